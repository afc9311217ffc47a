package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/johntint/booking-service/internal/usecase/create_booking"
	"github.com/johntint/booking-service/pkg/types"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return s.resp, s.err
}

type stubCounter struct {
	created int
}

func (s *stubCounter) IncBookingCreated() {
	s.created++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBody(t *testing.T) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(CreateBookingRequest{
		CustomerName:  "Ann Smith",
		CustomerPhone: "+15550001111",
		Date:          "2026-03-07",
		StartTime:     "10:00",
		ServiceID:     2,
		Shades:        []string{"5%"},
		WindowAreas:   []string{"Front doors"},
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func stubResponse() *createBooking.Response {
	return &createBooking.Response{
		ID:            42,
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		ServiceID:     2,
		ServiceName:   "Ceramic Tint",
		Shades:        []string{"5%"},
		WindowAreas:   []string{"Front doors"},
		TotalAmount:   6000,
		DepositAmount: 3000,
		Currency:      "usd",
		Status:        "awaiting_deposit",
		CreatedAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestHandler_Handle_IncrementsCounterOnSuccess(t *testing.T) {
	counter := &stubCounter{}
	handler := NewHandler(&stubUseCase{resp: stubResponse()}, counter, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", validBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, counter.created)
}

func TestHandler_Handle_NilCounterIsSafe(t *testing.T) {
	handler := NewHandler(&stubUseCase{resp: stubResponse()}, nil, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", validBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_Handle_NoCountOnUseCaseError(t *testing.T) {
	counter := &stubCounter{}
	handler := NewHandler(&stubUseCase{err: createBooking.ErrSlotUnavailable}, counter, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", validBody(t)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 0, counter.created)
}

func TestHandler_Handle_CountsWhenPaymentInitFailsAfterCreate(t *testing.T) {
	counter := &stubCounter{}
	handler := NewHandler(&stubUseCase{resp: stubResponse(), err: createBooking.ErrPaymentInit}, counter, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", validBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, counter.created)
}

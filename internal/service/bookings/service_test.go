package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	"github.com/johntint/booking-service/pkg/ptr"
)

// Репозиторий обязан удовлетворять контракту сервиса
var _ BookingRepository = (*bookingRepo.Repository)(nil)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubRepo struct {
	booking *domain.Booking
	applied bool
	updated bool
}

func (r *stubRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *stubRepo) ListWithFilter(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{r.booking}, nil
}

func (r *stubRepo) UpdateStatusIf(ctx context.Context, id int64, expected []domain.BookingStatus, newStatus domain.BookingStatus, extra *bookingRepo.StatusExtra) (bool, error) {
	r.updated = true
	if r.applied {
		r.booking.Status = newStatus
	}
	return r.applied, nil
}

type stubNotifier struct {
	sent int
}

func (n *stubNotifier) Send(to, subject, body string) error {
	n.sent++
	return nil
}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		CustomerName:  "Jane Miller",
		CustomerPhone: "+15550001111",
		CustomerEmail: ptr.Ptr("jane@example.com"),
		ServiceName:   "Ceramic Tint",
		Shades:        []string{"5%"},
		WindowAreas:   []string{"Front doors"},
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		TotalAmount:   6000,
		DepositAmount: 3000,
		Currency:      "usd",
		Status:        domain.StatusDepositPaid,
		CreatedAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestService_Cancel(t *testing.T) {
	repo := &stubRepo{booking: activeBooking(), applied: true}
	notifier := &stubNotifier{}
	svc := NewService(repo, notifier, noopLogger{})

	updated, err := svc.Cancel(context.Background(), 42, "customer no-show")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.True(t, repo.updated)
	assert.Equal(t, 1, notifier.sent)
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	repo := &stubRepo{booking: activeBooking(), applied: true}
	svc := NewService(repo, &stubNotifier{}, noopLogger{})

	_, err := svc.Cancel(context.Background(), 42, strings.Repeat("x", domain.MaxCancelReasonLength+1))

	require.ErrorIs(t, err, ErrReasonTooLong)
	assert.False(t, repo.updated)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	b := activeBooking()
	b.Status = domain.StatusCancelled
	repo := &stubRepo{booking: b}
	svc := NewService(repo, &stubNotifier{}, noopLogger{})

	_, err := svc.Cancel(context.Background(), 42, "")

	require.ErrorIs(t, err, ErrNotCancellable)
	assert.False(t, repo.updated)
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubNotifier{}, noopLogger{})

	_, err := svc.Cancel(context.Background(), 99, "")

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ExportCSV(t *testing.T) {
	repo := &stubRepo{booking: activeBooking()}
	svc := NewService(repo, &stubNotifier{}, noopLogger{})

	data, err := svc.ExportCSV(context.Background(), nil)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ID,Date,Time,Customer")
	assert.Contains(t, lines[1], "Jane Miller")
	assert.Contains(t, lines[1], "60.00")
	assert.Contains(t, lines[1], "30.00")
}

package request_final_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
	"github.com/johntint/booking-service/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubRepo struct {
	booking *domain.Booking
}

func (r *stubRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

type stubPayments struct {
	requests []stripepay.CheckoutRequest
	err      error
}

func (p *stubPayments) CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.requests = append(p.requests, req)
	return "https://checkout.stripe.example/cs_final_1", nil
}

type stubNotifier struct {
	sent int
	to   string
	body string
	fail bool
}

func (n *stubNotifier) Send(to, subject, body string) error {
	n.sent++
	n.to = to
	n.body = body
	if n.fail {
		return assert.AnError
	}
	return nil
}

func depositPaidBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		CustomerName:  "Jane Miller",
		CustomerEmail: ptr.Ptr("jane@example.com"),
		ServiceName:   "Ceramic Tint",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		TotalAmount:   16000,
		DepositAmount: 8000,
		Currency:      "usd",
		Status:        domain.StatusDepositPaid,
	}
}

func TestUseCase_Execute_IssuesPaymentLink(t *testing.T) {
	repo := &stubRepo{booking: depositPaidBooking()}
	payments := &stubPayments{}
	notifier := &stubNotifier{}
	uc := NewUseCase(repo, payments, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, int64(8000), resp.RemainingAmount)
	assert.Equal(t, "usd", resp.Currency)
	assert.Equal(t, "https://checkout.stripe.example/cs_final_1", resp.CheckoutURL)

	require.Len(t, payments.requests, 1)
	checkout := payments.requests[0]
	assert.Equal(t, stripepay.KindFinal, checkout.Kind)
	assert.Equal(t, int64(8000), checkout.Amount)
	assert.Contains(t, checkout.Description, "Ceramic Tint")
	assert.Contains(t, checkout.Description, "2026-03-07")

	assert.Equal(t, 1, notifier.sent)
	assert.Equal(t, "jane@example.com", notifier.to)
	assert.Contains(t, notifier.body, resp.CheckoutURL)
}

func TestUseCase_Execute_NotificationFailureDoesNotLoseLink(t *testing.T) {
	repo := &stubRepo{booking: depositPaidBooking()}
	notifier := &stubNotifier{fail: true}
	uc := NewUseCase(repo, &stubPayments{}, notifier, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	// Письмо не ушло, но ссылка возвращается админу
	require.NoError(t, err)
	assert.NotEmpty(t, resp.CheckoutURL)
}

func TestUseCase_Execute_DepositNotPaid(t *testing.T) {
	b := depositPaidBooking()
	b.Status = domain.StatusAwaitingDeposit
	payments := &stubPayments{}
	uc := NewUseCase(&stubRepo{booking: b}, payments, &stubNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.ErrorIs(t, err, ErrDepositNotPaid)
	assert.Empty(t, payments.requests)
}

func TestUseCase_Execute_NothingToPay(t *testing.T) {
	b := depositPaidBooking()
	b.DepositAmount = b.TotalAmount
	uc := NewUseCase(&stubRepo{booking: b}, &stubPayments{}, &stubNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.ErrorIs(t, err, ErrNothingToPay)
}

func TestUseCase_Execute_NoCustomerEmail(t *testing.T) {
	b := depositPaidBooking()
	b.CustomerEmail = nil
	uc := NewUseCase(&stubRepo{booking: b}, &stubPayments{}, &stubNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.ErrorIs(t, err, ErrNoCustomerEmail)
}

func TestUseCase_Execute_ProviderFailure(t *testing.T) {
	repo := &stubRepo{booking: depositPaidBooking()}
	payments := &stubPayments{err: stripepay.ErrProvider}
	notifier := &stubNotifier{}
	uc := NewUseCase(repo, payments, notifier, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	require.ErrorIs(t, err, ErrPaymentInit)
	assert.Zero(t, notifier.sent)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := NewUseCase(&stubRepo{}, &stubPayments{}, &stubNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

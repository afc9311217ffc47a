package payment_events

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

// Репозиторий обязан удовлетворять контракту use case
var _ BookingRepository = (*bookingRepo.Repository)(nil)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type statusUpdate struct {
	id        int64
	expected  []domain.BookingStatus
	newStatus domain.BookingStatus
	extra     *bookingRepo.StatusExtra
}

type stubRepo struct {
	booking *domain.Booking
	refErr  error
	applied bool
	updates []statusUpdate
}

func (r *stubRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *stubRepo) GetByPaymentRef(ctx context.Context, ref string) (*domain.Booking, error) {
	if r.refErr != nil {
		return nil, r.refErr
	}
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *stubRepo) UpdateStatusIf(ctx context.Context, id int64, expected []domain.BookingStatus, newStatus domain.BookingStatus, extra *bookingRepo.StatusExtra) (bool, error) {
	r.updates = append(r.updates, statusUpdate{id: id, expected: expected, newStatus: newStatus, extra: extra})
	return r.applied, nil
}

type recordingNotifier struct {
	customer []string
	shop     []string
}

func (n *recordingNotifier) Send(to, subject, body string) error {
	n.customer = append(n.customer, subject)
	return nil
}

func (n *recordingNotifier) NotifyShop(subject, body string) error {
	n.shop = append(n.shop, subject)
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		CustomerName:  "Jane Miller",
		CustomerEmail: ptr.Ptr("jane@example.com"),
		ServiceName:   "Ceramic Tint",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        domain.StatusAwaitingDeposit,
	}
}

func TestUseCase_Execute_DepositPaid(t *testing.T) {
	repo := &stubRepo{booking: testBooking(), applied: true}
	notifier := &recordingNotifier{}
	uc := NewUseCase(repo, notifier, noopLogger{})

	result, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:       stripepay.EventPaymentCompleted,
		BookingID:  42,
		Kind:       stripepay.KindDeposit,
		PaymentRef: "pi_123",
	})

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, domain.StatusDepositPaid, result.NewStatus)

	require.Len(t, repo.updates, 1)
	upd := repo.updates[0]
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending, domain.StatusAwaitingDeposit}, upd.expected)
	assert.Equal(t, domain.StatusDepositPaid, upd.newStatus)
	require.NotNil(t, upd.extra.DepositPaymentRef)
	assert.Equal(t, "pi_123", *upd.extra.DepositPaymentRef)

	assert.Len(t, notifier.customer, 1)
	assert.Len(t, notifier.shop, 1)
}

func TestUseCase_Execute_DuplicateDeliveryIsNoOp(t *testing.T) {
	repo := &stubRepo{booking: testBooking(), applied: false}
	notifier := &recordingNotifier{}
	uc := NewUseCase(repo, notifier, noopLogger{})

	result, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:       stripepay.EventPaymentCompleted,
		BookingID:  42,
		Kind:       stripepay.KindDeposit,
		PaymentRef: "pi_123",
	})

	require.NoError(t, err)
	assert.False(t, result.Applied)
	// Повтор не шлёт второе письмо
	assert.Empty(t, notifier.customer)
	assert.Empty(t, notifier.shop)
}

func TestUseCase_Execute_FinalRequiresDepositPaid(t *testing.T) {
	repo := &stubRepo{booking: testBooking(), applied: true}
	uc := NewUseCase(repo, &recordingNotifier{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:       stripepay.EventPaymentCompleted,
		BookingID:  42,
		Kind:       stripepay.KindFinal,
		PaymentRef: "pi_456",
	})

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, []domain.BookingStatus{domain.StatusDepositPaid}, repo.updates[0].expected)
	assert.Equal(t, domain.StatusFinalPaid, repo.updates[0].newStatus)
	require.NotNil(t, repo.updates[0].extra.FinalPaymentRef)
}

func TestUseCase_Execute_RefundByPaymentRef(t *testing.T) {
	repo := &stubRepo{booking: testBooking(), applied: true}
	notifier := &recordingNotifier{}
	uc := NewUseCase(repo, notifier, noopLogger{})

	result, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:       stripepay.EventRefunded,
		PaymentRef: "pi_123",
	})

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, domain.StatusCancelledRefunded, result.NewStatus)

	require.Len(t, repo.updates, 1)
	assert.True(t, repo.updates[0].extra.SetCancelledAt)
}

func TestUseCase_Execute_RefundForUnknownPaymentAcked(t *testing.T) {
	repo := &stubRepo{booking: nil}
	uc := NewUseCase(repo, &recordingNotifier{}, noopLogger{})

	result, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:       stripepay.EventRefunded,
		PaymentRef: "pi_unknown",
	})

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, repo.updates)
}

func TestUseCase_Execute_IgnoredEventType(t *testing.T) {
	repo := &stubRepo{}
	uc := NewUseCase(repo, &recordingNotifier{}, noopLogger{})

	result, err := uc.Execute(context.Background(), &stripepay.PaymentEvent{
		Type:    stripepay.EventIgnored,
		RawType: "payment_intent.created",
	})

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, repo.updates)
}

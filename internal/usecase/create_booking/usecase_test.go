package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/johntint/booking-service/internal/infra/storage/catalog"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
	"github.com/johntint/booking-service/internal/service/pricing"
	"github.com/johntint/booking-service/pkg/ptr"
	"github.com/johntint/booking-service/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubBookingRepo struct {
	active    []*domain.Booking
	createErr error
	created   *domain.Booking
}

func (r *stubBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = 42
	b.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.created = b
	return b, nil
}

func (r *stubBookingRepo) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return r.active, nil
}

type stubCatalogRepo struct {
	service *domain.Service
	svcErr  error
	shades  []*domain.ServiceShade
}

func (r *stubCatalogRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if r.svcErr != nil {
		return nil, r.svcErr
	}
	return r.service, nil
}

func (r *stubCatalogRepo) ListShades(ctx context.Context, serviceID int64, enabledOnly bool) ([]*domain.ServiceShade, error) {
	return r.shades, nil
}

type stubScheduleProvider struct {
	cfg *domain.ScheduleConfig
}

func (p *stubScheduleProvider) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	return p.cfg, nil
}

type stubPayments struct {
	url  string
	err  error
	reqs []stripepay.CheckoutRequest
}

func (p *stubPayments) CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (string, error) {
	p.reqs = append(p.reqs, req)
	if p.err != nil {
		return "", p.err
	}
	return p.url, nil
}

type stubNotifier struct {
	sent int
}

func (n *stubNotifier) NotifyShop(subject, body string) error {
	n.sent++
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc       *UseCase
	bookings *stubBookingRepo
	payments *stubPayments
	notifier *stubNotifier
}

func newFixture(depositFlow bool) *fixture {
	bookings := &stubBookingRepo{}
	payments := &stubPayments{url: "https://checkout.stripe.test/s/abc"}
	notifier := &stubNotifier{}

	catalog := &stubCatalogRepo{
		service: &domain.Service{
			ID:   2,
			Name: "Ceramic Tint",
			PriceTable: map[string]int64{
				"Front doors":      6000,
				"Front windshield": 10000,
			},
		},
		shades: []*domain.ServiceShade{
			{ID: 1, ServiceID: 2, Label: "5%", Enabled: true},
			{ID: 2, ServiceID: 2, Label: "20%", Enabled: true},
		},
	}

	schedule := &stubScheduleProvider{
		cfg: &domain.ScheduleConfig{
			ClosedWeekdays: []int{1},
			Groups: []domain.SlotGroup{
				{Key: "weekday", Weekdays: []int{2, 3, 4, 5}, Slots: []types.TimeString{"14:00"}},
				{Key: "saturday", Weekdays: []int{6}, Slots: []types.TimeString{"09:00", "10:00", "11:00", "12:00"}},
			},
			Spacing: &domain.SpacingRule{DayGroup: "saturday", Minutes: 60},
		},
	}

	uc := NewUseCase(
		bookings, catalog, schedule,
		pricing.NewService(50, "usd", noopLogger{}),
		payments, notifier, passthroughTx{}, depositFlow, noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookings: bookings, payments: payments, notifier: notifier}
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Jane Miller",
		CustomerPhone: "+15550100",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), // суббота
		StartTime:     "10:00",
		ServiceID:     2,
		Shades:        []string{"5%"},
		WindowAreas:   []string{"Front doors", "Front windshield"},
	}
}

func TestUseCase_Execute_FreezesQuoteOnBooking(t *testing.T) {
	f := newFixture(false)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(16000), resp.TotalAmount)
	assert.Equal(t, int64(8000), resp.DepositAmount)
	assert.Equal(t, "usd", resp.Currency)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Nil(t, resp.CheckoutURL)

	// Суммы записаны на бронировании, а не пересчитываются при чтении
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, int64(16000), f.bookings.created.TotalAmount)
	assert.Equal(t, int64(8000), f.bookings.created.DepositAmount)
	assert.Equal(t, "Ceramic Tint", f.bookings.created.ServiceName)
	assert.Equal(t, 1, f.notifier.sent)
}

func TestUseCase_Execute_DepositFlowReturnsCheckoutURL(t *testing.T) {
	f := newFixture(true)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAwaitingDeposit), resp.Status)
	require.NotNil(t, resp.CheckoutURL)
	assert.Equal(t, "https://checkout.stripe.test/s/abc", *resp.CheckoutURL)

	require.Len(t, f.payments.reqs, 1)
	assert.Equal(t, int64(42), f.payments.reqs[0].BookingID)
	assert.Equal(t, stripepay.KindDeposit, f.payments.reqs[0].Kind)
	assert.Equal(t, int64(8000), f.payments.reqs[0].Amount)
}

func TestUseCase_Execute_PaymentInitFailureKeepsBooking(t *testing.T) {
	f := newFixture(true)
	f.payments.err = stripepay.ErrProvider

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrPaymentInit)
	// Бронирование создано и держит слот, несмотря на провал провайдера
	require.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.NotNil(t, f.bookings.created)
}

func TestUseCase_Execute_SlotTakenConcurrently(t *testing.T) {
	f := newFixture(false)
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUseCase_Execute_SlotAlreadyBooked(t *testing.T) {
	f := newFixture(false)
	f.bookings.active = []*domain.Booking{
		{StartTime: "10:00", Status: domain.StatusDepositPaid},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUseCase_Execute_SpacingBlocksFollowingSlot(t *testing.T) {
	f := newFixture(false)
	f.bookings.active = []*domain.Booking{
		{StartTime: "09:00", Status: domain.StatusPending},
	}

	req := validRequest()
	req.StartTime = "10:00"
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotUnavailable)

	// Слот через два интервала свободен
	req = validRequest()
	req.StartTime = "11:00"
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_PassedSlotTodayUnavailable(t *testing.T) {
	f := newFixture(false)
	// Сегодня суббота, 15:00: утренние слоты уже прошли
	f.uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)}

	req := validRequest()
	req.StartTime = "09:00"

	_, err := f.uc.Execute(context.Background(), req)

	// Выдача доступности этот слот уже не показывает - бронировать его нельзя
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, f.bookings.created)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // понедельник

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrShopClosed)
}

func TestUseCase_Execute_TimeNotInSchedule(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.StartTime = "10:30"

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestUseCase_Execute_CarriesVehicleAndNotes(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.Vehicle = ptr.Ptr("2022 Tesla Model 3")
	req.Notes = ptr.Ptr("please call before arrival")

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, f.bookings.created)
	require.NotNil(t, f.bookings.created.Vehicle)
	assert.Equal(t, "2022 Tesla Model 3", *f.bookings.created.Vehicle)
	require.NotNil(t, f.bookings.created.Notes)
	assert.Equal(t, "please call before arrival", *f.bookings.created.Notes)
}

func TestUseCase_Execute_NotesTooLong(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1))

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, f.bookings.created)
}

func TestUseCase_Execute_DisabledShadeRejected(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.Shades = []string{"35%"}

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrShadeUnavailable)
}

func TestUseCase_Execute_SelectionRequired(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.WindowAreas = nil

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSelectionRequired)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.Date = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_UnknownService(t *testing.T) {
	f := newFixture(false)
	f.uc.catalogRepo = &stubCatalogRepo{svcErr: catalogRepo.ErrServiceNotFound}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceNotFound)
}

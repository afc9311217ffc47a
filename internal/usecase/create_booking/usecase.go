package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/johntint/booking-service/internal/infra/storage/catalog"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
	"github.com/johntint/booking-service/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	scheduleProvider ScheduleProvider
	pricingService   PricingService
	paymentClient    PaymentClient
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	depositFlow      bool
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	scheduleProvider ScheduleProvider,
	pricingService PricingService,
	paymentClient PaymentClient,
	notifier Notifier,
	txManager TransactionManager,
	depositFlow bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		scheduleProvider: scheduleProvider,
		pricingService:   pricingService,
		paymentClient:    paymentClient,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		depositFlow:      depositFlow,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности слота и вставка идут в сериализуемой транзакции,
// вторым рубежом стоит частичный уникальный индекс на (дата, время)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, service=%d, date=%s, time=%s",
		req.CustomerName, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и валидируем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что выбранные тонировки включены для услуги
	enabledShades, err := uc.catalogRepo.ListShades(ctx, req.ServiceID, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list shades for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to list shades: %v", ErrInternal, err)
	}
	if err := validateShades(req.Shades, enabledShades); err != nil {
		uc.logger.Warn("CreateBooking: shade validation failed: %v", err)
		return nil, err
	}

	// 5. Считаем стоимость: суммы замораживаются на бронировании
	quote, err := uc.pricingService.Calculate(service, req.WindowAreas)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Получаем конфигурацию расписания
	cfg, err := uc.scheduleProvider.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 7. Проверяем день и принадлежность времени расписанию
	weekday := int(req.Date.Weekday())
	if cfg.IsClosed(weekday) {
		uc.logger.Warn("CreateBooking: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrShopClosed
	}
	group := cfg.GroupForWeekday(weekday)
	if group == nil {
		uc.logger.Warn("CreateBooking: no schedule group for %s", req.Date.Format(domain.DateFormat))
		return nil, ErrShopClosed
	}
	if !slotInGroup(group, req.StartTime) {
		uc.logger.Warn("CreateBooking: time %s is not in the schedule for %s",
			req.StartTime, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidTimeSlot
	}

	initialStatus := domain.StatusPending
	if uc.depositFlow {
		initialStatus = domain.StatusAwaitingDeposit
	}

	var result *domain.Booking

	// 8. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные бронирования на дату с блокировкой строк
		active, err := uc.bookingRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Тот же резолвер, что отдаёт список доступных слотов клиенту:
		// занятые, заблокированные интервалом и уже прошедшие (сегодня)
		// слоты бронированию недоступны
		if !containsSlot(domain.ResolveAvailableSlots(cfg, req.Date, active, now), req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 8.3. Создаем бронирование с замороженными суммами
		booking := &domain.Booking{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Vehicle:       req.Vehicle,
			Notes:         req.Notes,
			Date:          req.Date,
			StartTime:     req.StartTime,
			ServiceID:     service.ID,
			ServiceName:   service.Name,
			Shades:        req.Shades,
			WindowAreas:   req.WindowAreas,
			TotalAmount:   quote.TotalAmount,
			DepositAmount: quote.DepositAmount,
			Currency:      quote.Currency,
			Status:        initialStatus,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s taken concurrently",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s", result.ID, result.Status)

	uc.notifyNewBooking(result)

	resp := toResponse(result)

	// 9. Открываем платёжную сессию на депозит
	// Бронирование уже создано и держит слот: провал провайдера не откатывает его
	if uc.depositFlow {
		url, err := uc.paymentClient.CreateCheckoutSession(ctx, stripepay.CheckoutRequest{
			BookingID:     result.ID,
			Kind:          stripepay.KindDeposit,
			Amount:        result.DepositAmount,
			Currency:      result.Currency,
			Description:   fmt.Sprintf("%s deposit - %s %s", result.ServiceName, result.Date.Format(domain.DateFormat), result.StartTime.Label12()),
			CustomerEmail: result.CustomerEmail,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: checkout session failed for booking id=%d: %v", result.ID, err)
			return resp, fmt.Errorf("%w: %v", ErrPaymentInit, err)
		}
		resp.CheckoutURL = &url
	}

	return resp, nil
}

// slotInGroup проверяет, что время есть в списке слотов группы
func slotInGroup(group *domain.SlotGroup, t types.TimeString) bool {
	for _, slot := range group.Slots {
		if slot == t {
			return true
		}
	}
	return false
}

// containsSlot проверяет, что время есть в списке доступных слотов
func containsSlot(slots []types.TimeString, t types.TimeString) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		Shades:        b.Shades,
		WindowAreas:   b.WindowAreas,
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
		Currency:      b.Currency,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

// notifyNewBooking уведомляет магазин о новой записи
// Лучшая попытка: ошибка отправки не влияет на результат
func (uc *UseCase) notifyNewBooking(b *domain.Booking) {
	body := fmt.Sprintf(
		"<p>New booking #%d</p><p>%s, %s</p><p>%s - %s at %s</p>",
		b.ID, b.CustomerName, b.CustomerPhone,
		b.ServiceName, b.Date.Format("January 2, 2006"), b.StartTime.Label12(),
	)
	if err := uc.notifier.NotifyShop(fmt.Sprintf("New booking #%d", b.ID), body); err != nil {
		uc.logger.Warn("CreateBooking: shop notification failed for booking id=%d: %v", b.ID, err)
	}
}

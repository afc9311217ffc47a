package get_availability

import (
	"context"
	"fmt"

	"github.com/johntint/booking-service/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleProvider ScheduleProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleProvider ScheduleProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleProvider: scheduleProvider,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 3. Прошедшие даты - пустой список без ошибки
	if isDateInPast(req.Date, now) {
		return &Response{Date: req.Date, Slots: []domain.AvailableSlot{}}, nil
	}

	// 4. Получаем конфигурацию расписания
	cfg, err := uc.scheduleProvider.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 5. Генерируем базовые слоты расписания на дату
	weekday := int(req.Date.Weekday())
	base := domain.BaseSlots(cfg, req.Date)
	if len(base) == 0 {
		uc.logger.Info("GetAvailability: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:   req.Date,
			Closed: cfg.IsClosed(weekday) || cfg.GroupForWeekday(weekday) == nil,
			Slots:  []domain.AvailableSlot{},
		}, nil
	}

	// 6. Получаем активные бронирования на эту дату
	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Общий резолвер убирает занятые, заблокированные интервалом
	// и уже прошедшие (для сегодняшней даты) слоты.
	// Тот же резолвер стоит на пути создания бронирования
	available := domain.ResolveAvailableSlots(cfg, req.Date, bookings, now)

	slots := make([]domain.AvailableSlot, len(available))
	for i, t := range available {
		slots[i] = domain.NewAvailableSlot(t)
	}

	uc.logger.Info("GetAvailability: %d of %d slots available on %s",
		len(slots), len(base), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: slots}, nil
}

package get_availability

import (
	"context"
	"time"

	"github.com/johntint/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByDate получает активные бронирования на дату
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ScheduleProvider интерфейс получения конфигурации расписания
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package bookings

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, expected []domain.BookingStatus, newStatus domain.BookingStatus, extra *bookingRepo.StatusExtra) (bool, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Send(to, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

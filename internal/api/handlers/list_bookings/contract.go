package list_bookings

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
)

type BookingService interface {
	List(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

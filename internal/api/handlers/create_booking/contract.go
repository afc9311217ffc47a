package create_booking

import (
	"context"

	createBooking "github.com/johntint/booking-service/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// BookingCounter счётчик созданных бронирований для метрик
type BookingCounter interface {
	IncBookingCreated()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

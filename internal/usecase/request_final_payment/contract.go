package request_final_payment

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PaymentClient интерфейс платёжного провайдера
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (string, error)
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

package stripe_webhook

import (
	"context"

	"github.com/johntint/booking-service/internal/integrations/stripepay"
	paymentEvents "github.com/johntint/booking-service/internal/usecase/payment_events"
)

type EventVerifier interface {
	VerifyAndParseEvent(payload []byte, sigHeader string) (*stripepay.PaymentEvent, error)
}

type PaymentEventsUseCase interface {
	Execute(ctx context.Context, event *stripepay.PaymentEvent) (*paymentEvents.Result, error)
}

// EventCounter счётчик обработанных событий для метрик
type EventCounter interface {
	IncPaymentEvent(eventType, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

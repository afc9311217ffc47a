package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
)

// maxBodyBytes предел размера тела вебхука
const maxBodyBytes = 64 * 1024

type Handler struct {
	verifier EventVerifier
	useCase  PaymentEventsUseCase
	counter  EventCounter
	logger   Logger
}

// NewHandler создает новый обработчик вебхука
// counter может быть nil, если метрики выключены
func NewHandler(verifier EventVerifier, useCase PaymentEventsUseCase, counter EventCounter, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		counter:  counter,
		logger:   logger,
	}
}

// Handle POST /api/v1/payments/stripe/webhook
// Подпись заголовка Stripe-Signature - единственная аутентификация запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, "cannot read request body")
		return
	}

	event, err := h.verifier.VerifyAndParseEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, stripepay.ErrVerificationFailed):
			h.logger.Warn("POST /payments/stripe/webhook - Signature verification failed: %v", err)
			h.count("unknown", "signature_failed")
			handlers.RespondBadRequest(w, "invalid signature")
		case errors.Is(err, stripepay.ErrMalformedEvent):
			h.logger.Warn("POST /payments/stripe/webhook - Malformed event: %v", err)
			h.count("unknown", "malformed")
			handlers.RespondBadRequest(w, "malformed event")
		default:
			h.logger.Error("POST /payments/stripe/webhook - Verification error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), event)
	if err != nil {
		// Ошибка на нашей стороне: отвечаем 500, чтобы провайдер повторил доставку
		h.logger.Error("POST /payments/stripe/webhook - Failed to process %s: %v", event.RawType, err)
		h.count(event.RawType, "error")
		handlers.RespondInternalError(w)
		return
	}

	outcome := "ignored"
	if result.Applied {
		outcome = "applied"
	} else if result.BookingID != 0 {
		outcome = "duplicate"
	}
	h.count(event.RawType, outcome)

	h.logger.Info("POST /payments/stripe/webhook - Event %s: %s", event.RawType, outcome)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) count(eventType, result string) {
	if h.counter != nil {
		h.counter.IncPaymentEvent(eventType, result)
	}
}

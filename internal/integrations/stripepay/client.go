package stripepay

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/refund"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного провайдера Stripe
// Подпись вебхука - единственная аутентификация входящих событий
type Client struct {
	secretKey        string
	webhookSecret    string
	webhookTolerance time.Duration
	successURL       string
	cancelURL        string
	log              Logger
}

// Config параметры клиента Stripe
type Config struct {
	SecretKey               string
	WebhookSecret           string
	WebhookToleranceSeconds int
	SuccessURL              string
	CancelURL               string
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(cfg Config, log Logger) *Client {
	tolSeconds := cfg.WebhookToleranceSeconds
	if tolSeconds <= 0 {
		tolSeconds = 300
	}
	return &Client{
		secretKey:        cfg.SecretKey,
		webhookSecret:    cfg.WebhookSecret,
		webhookTolerance: time.Duration(tolSeconds) * time.Second,
		successURL:       cfg.SuccessURL,
		cancelURL:        cfg.CancelURL,
		log:              log,
	}
}

// CreateCheckoutSession создает checkout-сессию и возвращает URL для редиректа
// booking_id и kind кладутся в метаданные сессии и payment intent -
// по ним вебхук находит бронирование
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	// Stripe использует глобальный API ключ; ограничиваем использование этим вызовом
	stripe.Key = c.secretKey

	metadata := map[string]string{
		"booking_id": strconv.FormatInt(req.BookingID, 10),
		"kind":       req.Kind,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
		Metadata: metadata,
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx
	if req.CustomerEmail != nil {
		params.CustomerEmail = stripe.String(*req.CustomerEmail)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		c.log.Error("stripepay: checkout session create failed: booking_id=%d, kind=%s, err=%v",
			req.BookingID, req.Kind, err)
		return "", fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}

	c.log.Info("stripepay: checkout session created: booking_id=%d, kind=%s, session_id=%s",
		req.BookingID, req.Kind, sess.ID)
	return sess.URL, nil
}

// RefundPayment выполняет возврат платежа по payment intent
// Возвращает id созданного refund
func (c *Client) RefundPayment(ctx context.Context, paymentRef string) (string, error) {
	stripe.Key = c.secretKey

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		c.log.Error("stripepay: refund failed: payment_ref=%s, err=%v", paymentRef, err)
		return "", fmt.Errorf("%w: create refund: %v", ErrProvider, err)
	}

	c.log.Info("stripepay: refund created: payment_ref=%s, refund_id=%s", paymentRef, ref.ID)
	return ref.ID, nil
}

// VerifyAndParseEvent проверяет подпись входящего события и извлекает
// данные, нужные контроллеру жизненного цикла платежей
// Невалидная подпись - security-relevant событие: оно логируется, а событие
// отбрасывается целиком без изменения состояния
func (c *Client) VerifyAndParseEvent(payload []byte, sigHeader string) (*PaymentEvent, error) {
	evt, err := webhook.ConstructEventWithTolerance(payload, sigHeader, c.webhookSecret, c.webhookTolerance)
	if err != nil {
		c.log.Warn("stripepay: webhook signature verification failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	evtType := string(evt.Type)

	switch evtType {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("%w: invalid checkout session payload: %v", ErrMalformedEvent, err)
		}

		bookingID, err := strconv.ParseInt(session.Metadata["booking_id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: missing or invalid booking_id metadata", ErrMalformedEvent)
		}

		kind := session.Metadata["kind"]
		if kind != KindDeposit && kind != KindFinal {
			return nil, fmt.Errorf("%w: unknown payment kind %q", ErrMalformedEvent, kind)
		}

		paymentRef := ""
		if session.PaymentIntent != nil {
			paymentRef = session.PaymentIntent.ID
		}

		return &PaymentEvent{
			Type:       EventPaymentCompleted,
			RawType:    evtType,
			BookingID:  bookingID,
			Kind:       kind,
			PaymentRef: paymentRef,
		}, nil

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(evt.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("%w: invalid charge payload: %v", ErrMalformedEvent, err)
		}

		paymentRef := ""
		if charge.PaymentIntent != nil {
			paymentRef = charge.PaymentIntent.ID
		}

		return &PaymentEvent{
			Type:       EventRefunded,
			RawType:    evtType,
			PaymentRef: paymentRef,
		}, nil

	default:
		// Остальные типы событий подтверждаем, но не обрабатываем
		return &PaymentEvent{Type: EventIgnored, RawType: evtType}, nil
	}
}

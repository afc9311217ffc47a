package stripepay

// Payment kinds в метаданных checkout-сессии
const (
	KindDeposit = "deposit"
	KindFinal   = "final"
)

// EventType тип распознанного события провайдера
type EventType string

const (
	// EventPaymentCompleted checkout-сессия успешно оплачена
	EventPaymentCompleted EventType = "payment_completed"
	// EventRefunded платеж возвращен (в том числе через дашборд Stripe)
	EventRefunded EventType = "refunded"
	// EventIgnored событие валидно, но не влияет на бронирования
	EventIgnored EventType = "ignored"
)

// CheckoutRequest параметры создания checkout-сессии
type CheckoutRequest struct {
	BookingID     int64
	Kind          string // KindDeposit | KindFinal
	Amount        int64  // minor units
	Currency      string
	Description   string
	CustomerEmail *string
}

// PaymentEvent распознанное и проверенное событие провайдера
type PaymentEvent struct {
	Type       EventType
	RawType    string // исходный тип события Stripe (для логов)
	BookingID  int64  // заполнен для EventPaymentCompleted
	Kind       string // KindDeposit | KindFinal, для EventPaymentCompleted
	PaymentRef string // payment intent id
}

package stripepay

import "errors"

var (
	// ErrProvider возвращается, когда вызов Stripe завершился неуспешно
	// Вызывающая сторона трактует это как retryable ошибку
	ErrProvider = errors.New("stripepay: provider call failed")

	// ErrVerificationFailed возвращается при невалидной подписи входящего события
	// Событие отбрасывается целиком, состояние не меняется
	ErrVerificationFailed = errors.New("stripepay: event signature verification failed")

	// ErrMalformedEvent возвращается, когда подпись валидна, но payload события
	// не содержит ожидаемых метаданных
	ErrMalformedEvent = errors.New("stripepay: malformed event payload")
)

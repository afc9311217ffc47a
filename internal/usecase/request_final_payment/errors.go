package request_final_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("request_final_payment: booking not found")

	// ErrDepositNotPaid возвращается, когда депозит ещё не оплачен
	ErrDepositNotPaid = errors.New("request_final_payment: deposit has not been paid yet")

	// ErrNothingToPay возвращается, когда остаток равен нулю
	ErrNothingToPay = errors.New("request_final_payment: nothing left to pay")

	// ErrNoCustomerEmail возвращается, когда у бронирования нет email для отправки ссылки
	ErrNoCustomerEmail = errors.New("request_final_payment: booking has no customer email")

	// ErrPaymentInit возвращается при ошибке создания платёжной сессии
	ErrPaymentInit = errors.New("request_final_payment: failed to start final payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_final_payment: internal error")
)

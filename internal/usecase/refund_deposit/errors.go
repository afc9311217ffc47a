package refund_deposit

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("refund_deposit: booking not found")

	// ErrNoDepositPayment возвращается, когда у бронирования нет оплаченного депозита
	ErrNoDepositPayment = errors.New("refund_deposit: booking has no deposit payment to refund")

	// ErrAlreadyProcessed возвращается, когда бронирование уже отменено или возвращено
	ErrAlreadyProcessed = errors.New("refund_deposit: booking is already cancelled or refunded")

	// ErrRefundFailed возвращается при ошибке провайдера во время возврата
	ErrRefundFailed = errors.New("refund_deposit: provider refund failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("refund_deposit: internal error")
)

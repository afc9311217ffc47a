package bookings

import "errors"

var (
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings.service: internal error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")
	// ErrNotCancellable бронирование в текущем статусе нельзя отменить
	ErrNotCancellable = errors.New("bookings.service: booking cannot be cancelled in its current status")
	// ErrReasonTooLong причина отмены превышает допустимую длину
	ErrReasonTooLong = errors.New("bookings.service: cancellation reason is too long")
)

package get_availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

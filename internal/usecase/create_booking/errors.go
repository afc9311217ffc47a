package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrShadeUnavailable возвращается, когда выбранная тонировка отключена или не существует
	ErrShadeUnavailable = errors.New("create_booking: selected shade is not available")

	// ErrSelectionRequired возвращается, когда не выбраны тонировки или зоны остекления
	ErrSelectionRequired = errors.New("create_booking: shade and window selection is required")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrShopClosed возвращается, когда магазин закрыт в указанную дату
	ErrShopClosed = errors.New("create_booking: shop is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда времени нет в расписании на этот день
	ErrInvalidTimeSlot = errors.New("create_booking: time is not in the schedule for this date")

	// ErrSlotUnavailable возвращается, когда слот занят или заблокирован интервалом
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrPaymentInit возвращается, когда бронирование создано, но платёжную сессию открыть не удалось
	ErrPaymentInit = errors.New("create_booking: failed to start deposit payment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

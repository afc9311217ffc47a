package payment_events

import "github.com/johntint/booking-service/internal/domain"

// Result результат обработки платёжного события
type Result struct {
	Applied   bool                 // Переход статуса выполнен этой доставкой
	BookingID int64                // Затронутое бронирование, если найдено
	NewStatus domain.BookingStatus // Новый статус при Applied=true
}

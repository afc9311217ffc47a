package get_availability

import (
	"time"

	"github.com/johntint/booking-service/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты (без времени, UTC)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   time.Time              // Дата запроса
	Closed bool                   // Магазин закрыт в этот день
	Slots  []domain.AvailableSlot // Доступные слоты по возрастанию времени
}

package create_booking

import (
	"time"

	"github.com/johntint/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Vehicle       *string          // Марка/модель автомобиля (опционально)
	Notes         *string          // Пожелания клиента (опционально)
	Date          time.Time        // Дата бронирования (без времени, UTC)
	StartTime     types.TimeString // Время начала ("14:00")
	ServiceID     int64
	Shades        []string // Выбранные тонировки
	WindowAreas   []string // Выбранные зоны остекления
}

// Response модель ответа на создание бронирования
type Response struct {
	ID            int64
	Date          time.Time
	StartTime     types.TimeString
	ServiceID     int64
	ServiceName   string
	Shades        []string
	WindowAreas   []string
	TotalAmount   int64
	DepositAmount int64
	Currency      string
	Status        string
	CheckoutURL   *string // URL оплаты депозита, если включен депозитный поток
	CreatedAt     time.Time
}

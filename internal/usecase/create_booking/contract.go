package create_booking

import (
	"context"
	"time"

	"github.com/johntint/booking-service/internal/domain"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
	"github.com/johntint/booking-service/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetActiveByDate получает активные бронирования на дату
	// Внутри транзакции строки блокируются (FOR UPDATE)
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListShades(ctx context.Context, serviceID int64, enabledOnly bool) ([]*domain.ServiceShade, error)
}

// ScheduleProvider интерфейс получения конфигурации расписания
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// PricingService интерфейс расчёта стоимости
type PricingService interface {
	Calculate(service *domain.Service, items []string) (*pricing.Quote, error)
}

// PaymentClient интерфейс платёжного провайдера
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (string, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	NotifyShop(subject, body string) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package pricing

import (
	"github.com/johntint/booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Quote результат расчёта стоимости бронирования
// Суммы в минорных единицах валюты (центы)
type Quote struct {
	TotalAmount   int64
	DepositAmount int64
	Currency      string
}

// Service сервис расчёта стоимости
type Service struct {
	depositPercent int64
	currency       string
	logger         Logger
}

// NewService создает новый экземпляр сервиса расчёта стоимости
func NewService(depositPercent int64, currency string, logger Logger) *Service {
	return &Service{
		depositPercent: depositPercent,
		currency:       currency,
		logger:         logger,
	}
}

// Calculate считает полную стоимость и депозит для выбранной услуги и позиций
// Позиции, отсутствующие в прайс-листе услуги, оцениваются в ноль -
// заказ не отклоняется, менеджер уточнит цену при подтверждении
// Депозит округляется арифметически (половина вверх)
func (s *Service) Calculate(service *domain.Service, items []string) (*Quote, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total int64
	for _, item := range items {
		price, ok := service.PriceTable[item]
		if !ok {
			s.logger.Warn("Calculate: item %q not in price table for service id=%d, priced at 0", item, service.ID)
			continue
		}
		total += price
	}

	deposit := (total*s.depositPercent + 50) / 100

	s.logger.Info("Calculate: service id=%d, items=%d, total=%d, deposit=%d %s",
		service.ID, len(items), total, deposit, s.currency)

	return &Quote{
		TotalAmount:   total,
		DepositAmount: deposit,
		Currency:      s.currency,
	}, nil
}

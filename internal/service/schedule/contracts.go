package schedule

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

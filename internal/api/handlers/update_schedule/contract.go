package update_schedule

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
)

type ScheduleService interface {
	Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

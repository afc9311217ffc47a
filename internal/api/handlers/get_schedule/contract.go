package get_schedule

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
)

type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

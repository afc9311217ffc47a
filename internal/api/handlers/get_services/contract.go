package get_services

import (
	"context"

	"github.com/johntint/booking-service/internal/domain"
)

type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	ListShades(ctx context.Context, serviceID int64, enabledOnly bool) ([]*domain.ServiceShade, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

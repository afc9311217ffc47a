package toggle_shade

import "context"

type CatalogRepository interface {
	ToggleShade(ctx context.Context, shadeID int64, enabled bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

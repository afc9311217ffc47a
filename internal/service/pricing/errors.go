package pricing

import "errors"

var (
	// ErrNoItems набор позиций пуст
	ErrNoItems = errors.New("pricing.service: at least one work item is required")
)

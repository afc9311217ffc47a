package get_availability

import (
	"fmt"
	"time"
)

// maxAdvanceDays горизонт бронирования в днях
const maxAdvanceDays = 90

// validateRequest валидирует запрос доступных слотов
func validateRequest(req *Request, now time.Time) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	horizon := now.AddDate(0, 0, maxAdvanceDays)
	if req.Date.After(horizon) {
		return fmt.Errorf("%w: date exceeds %d days horizon", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

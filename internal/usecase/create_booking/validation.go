package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/johntint/booking-service/internal/domain"
)

// maxAdvanceDays горизонт бронирования в днях
const maxAdvanceDays = 90

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.CustomerEmail != nil && !strings.Contains(*req.CustomerEmail, "@") {
		return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if len(req.Shades) == 0 || len(req.WindowAreas) == 0 {
		return ErrSelectionRequired
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, maxAdvanceDays)
	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, time.UTC)

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateShades проверяет, что все выбранные тонировки включены для услуги
func validateShades(selected []string, enabled []*domain.ServiceShade) error {
	available := make(map[string]bool, len(enabled))
	for _, shade := range enabled {
		available[shade.Label] = true
	}

	for _, label := range selected {
		if !available[label] {
			return fmt.Errorf("%w: %q", ErrShadeUnavailable, label)
		}
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

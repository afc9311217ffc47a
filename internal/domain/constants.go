package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinWeekdayIndex         = 0 // Sunday
	MaxWeekdayIndex         = 6 // Saturday
	MaxSpacingMinutes       = 600
	MaxCustomerNameLength   = 200
	MaxNotesLength          = 500
	MaxCancelReasonLength   = 500
	MinDepositPercent       = 0
	MaxDepositPercent       = 100
)

// InactiveStatuses no longer occupy a slot.
// Used when filtering bookings for availability computation.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCancelledRefunded,
}

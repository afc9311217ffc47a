package domain

import "github.com/johntint/booking-service/pkg/types"

// AvailableSlot is a single bookable start time on a given date
type AvailableSlot struct {
	Time  types.TimeString // machine value, "HH:MM"
	Label string           // human-readable 12-hour label, e.g. "2:00 PM"
}

// NewAvailableSlot builds a slot with its customer-facing label.
func NewAvailableSlot(t types.TimeString) AvailableSlot {
	return AvailableSlot{Time: t, Label: t.Label12()}
}

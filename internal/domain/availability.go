package domain

import (
	"sort"
	"time"

	"github.com/johntint/booking-service/pkg/types"
)

// BaseSlots returns the schedule's candidate start times for a date in
// ascending order. Closed weekdays and weekdays not covered by any group
// yield an empty list. The group's slot list is copied, never mutated.
func BaseSlots(cfg *ScheduleConfig, date time.Time) []types.TimeString {
	weekday := int(date.Weekday())

	if cfg.IsClosed(weekday) {
		return []types.TimeString{}
	}

	group := cfg.GroupForWeekday(weekday)
	if group == nil {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, len(group.Slots))
	copy(slots, group.Slots)
	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })

	return slots
}

// ResolveAvailableSlots is the single availability resolver: it narrows the
// base slots down to what a customer may book right now. The listing path
// and the booking conflict guard both go through it, so the two cannot
// disagree on what is bookable.
//
// An active booking at time T removes T itself and, when the day group has a
// spacing rule, T+minutes. The rule only looks forward: the slot before a
// booked one stays open. For bookings whose T+minutes falls past midnight
// the forward block is dropped. On the current day, start times at or before
// now are removed as well.
func ResolveAvailableSlots(cfg *ScheduleConfig, date time.Time, bookings []*Booking, now time.Time) []types.TimeString {
	base := BaseSlots(cfg, date)
	if len(base) == 0 {
		return base
	}

	spacing := 0
	if group := cfg.GroupForWeekday(int(date.Weekday())); group != nil {
		if rule := cfg.SpacingFor(group.Key); rule != nil {
			spacing = rule.Minutes
		}
	}

	blocked := make(map[string]bool, len(bookings)*2)
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		blocked[booking.StartTime.String()] = true

		if spacing > 0 {
			next, err := booking.StartTime.AddMinutes(spacing)
			if err == nil {
				blocked[next.String()] = true
			}
		}
	}

	var cutoff types.TimeString
	if sameDay(date, now) {
		cutoff = types.NewTimeString(now)
	}

	available := make([]types.TimeString, 0, len(base))
	for _, slot := range base {
		if blocked[slot.String()] {
			continue
		}
		if cutoff != "" && !slot.IsAfter(cutoff) {
			continue
		}
		available = append(available, slot)
	}

	return available
}

func sameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

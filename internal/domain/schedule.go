package domain

import (
	"time"

	"github.com/johntint/booking-service/pkg/types"
)

// SlotGroup is a named bucket of weekdays sharing one candidate slot list,
// e.g. "weekday" covering Tue-Fri, "saturday", "sunday".
type SlotGroup struct {
	Key      string             `json:"key"`
	Weekdays []int              `json:"weekdays"` // 0=Sunday..6=Saturday
	Slots    []types.TimeString `json:"slots"`    // admin-entered order is preserved in storage
}

// SpacingRule blocks the slot immediately following a booked one by the
// configured number of minutes, for a single day group. One-directional:
// a booking at T blocks T+Minutes, never T-Minutes.
type SpacingRule struct {
	DayGroup string `json:"dayGroup"`
	Minutes  int    `json:"minutes"`
}

// ScheduleConfig is the shop's weekly booking template. Singleton, mutable
// only by admin. Read far more often than written, so the schedule service
// caches it in memory and invalidates on update.
type ScheduleConfig struct {
	ClosedWeekdays []int        `json:"closedWeekdays"`
	Groups         []SlotGroup  `json:"groups"`
	Spacing        *SpacingRule `json:"spacing,omitempty"`

	UpdatedAt time.Time `json:"-"`
}

// GroupForWeekday returns the slot group covering the given weekday index,
// or nil when no group covers it.
func (c *ScheduleConfig) GroupForWeekday(weekday int) *SlotGroup {
	for i := range c.Groups {
		for _, wd := range c.Groups[i].Weekdays {
			if wd == weekday {
				return &c.Groups[i]
			}
		}
	}
	return nil
}

// IsClosed reports whether the shop is closed on the given weekday index.
func (c *ScheduleConfig) IsClosed(weekday int) bool {
	for _, wd := range c.ClosedWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// SpacingFor returns the spacing rule if it applies to the given group key.
func (c *ScheduleConfig) SpacingFor(groupKey string) *SpacingRule {
	if c.Spacing == nil || c.Spacing.DayGroup != groupKey || c.Spacing.Minutes <= 0 {
		return nil
	}
	return c.Spacing
}

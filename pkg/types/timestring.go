package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is deliberately not a time.Time: bookings operate on the shop's fixed
// local calendar and must never be shifted by timezone conversions.
type TimeString string

var timeStringPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ErrInvalidTimeString is returned when a string is not a valid HH:MM time.
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

// NewTimeString creates a TimeString from the clock portion of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an HH:MM string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed HH:MM time.
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the HH:MM representation.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	h, _ := strconv.Atoi(string(t)[:2])
	m, _ := strconv.Atoi(string(t)[3:])
	return h*60 + m, nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// The result must stay within the same day; operating hours never cross midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+dm is outside the day", ErrInvalidTimeString, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare lexicographically, which matches HH:MM ordering
// for all valid values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Label12 returns the 12-hour clock label shown to customers, e.g. "1:30 PM".
func (t TimeString) Label12() string {
	total, err := t.Minutes()
	if err != nil {
		return string(t)
	}
	h, m := total/60, total%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// Value implements driver.Valuer so TimeString can be bound directly in queries.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts HH:MM and HH:MM:SS (postgres TIME columns).
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	if len(s) >= 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

package domain

import (
	"time"

	"github.com/johntint/booking-service/pkg/types"
)

// BookingStatus represents the payment lifecycle state of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusAwaitingDeposit   BookingStatus = "awaiting_deposit"
	StatusDepositPaid       BookingStatus = "deposit_paid"
	StatusFinalPaid         BookingStatus = "final_paid"
	StatusCancelled         BookingStatus = "cancelled"
	StatusCancelledRefunded BookingStatus = "cancelled_refunded"
)

// transitions is the exhaustive state machine over BookingStatus.
// Anything not listed here is rejected.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:         {StatusDepositPaid, StatusCancelled},
	StatusAwaitingDeposit: {StatusDepositPaid, StatusCancelled, StatusCancelledRefunded},
	StatusDepositPaid:     {StatusFinalPaid, StatusCancelled, StatusCancelledRefunded},
}

// IsValid reports whether s is a known status value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingDeposit, StatusDepositPaid,
		StatusFinalPaid, StatusCancelled, StatusCancelledRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the transition s -> next is in the table.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentKind tags a provider payment event as the deposit or the final payment
type PaymentKind string

const (
	PaymentKindDeposit PaymentKind = "deposit"
	PaymentKindFinal   PaymentKind = "final"
)

// IsValid reports whether k is a known payment kind.
func (k PaymentKind) IsValid() bool {
	return k == PaymentKindDeposit || k == PaymentKindFinal
}

// Booking represents a service appointment in the system.
//
// Commercial fields (TotalAmount, DepositAmount, Currency, Shades, WindowAreas)
// are a frozen snapshot computed once at creation time. They are never
// re-derived from the service price table, so later admin edits to pricing
// cannot change what an existing customer was charged.
type Booking struct {
	ID int64

	// Customer fields, opaque to the core logic
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Vehicle       *string
	Notes         *string

	// Scheduling fields. StartTime is immutable once set; changing the
	// time means cancel-and-rebook.
	Date      time.Time // calendar day at UTC midnight
	StartTime types.TimeString

	// Commercial snapshot
	ServiceID     int64
	ServiceName   string
	Shades        []string
	WindowAreas   []string
	TotalAmount   int64 // minor currency units
	DepositAmount int64 // minor currency units
	Currency      string

	Status BookingStatus

	// Opaque payment provider references, populated once the corresponding
	// payment event is observed
	DepositPaymentRef *string
	FinalPaymentRef   *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCancelledRefunded
}

// IsCancelled reports whether the booking was cancelled, refunded or not.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusCancelledRefunded
}

// CanBeCancelled reports whether an admin may cancel the booking.
func (b *Booking) CanBeCancelled() bool {
	return !b.Status.IsTerminal()
}

// RemainingAmount returns the outstanding balance after the deposit.
func (b *Booking) RemainingAmount() int64 {
	return b.TotalAmount - b.DepositAmount
}

// DayOfWeek returns the booking's weekday index (0=Sunday..6=Saturday),
// derived from the calendar day at UTC midnight.
func (b *Booking) DayOfWeek() int {
	return int(b.Date.UTC().Weekday())
}

// BookingsFilter is the admin listing/export filter
type BookingsFilter struct {
	StartDate       *time.Time     // inclusive, nil = unbounded
	EndDate         *time.Time     // inclusive, nil = unbounded
	Status          *BookingStatus // nil = all statuses (subject to IncludeInactive)
	Search          *string        // matches customer name or phone, case-insensitive
	IncludeInactive bool           // include cancelled bookings
}

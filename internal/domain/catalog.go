package domain

import "time"

// Service represents a tint service tier (e.g. Carbon, Ceramic).
// Referenced by bookings via ID, never embedded; the booking keeps its own
// frozen price snapshot instead.
type Service struct {
	ID          int64
	Name        string
	Description string
	BasePrice   int64 // minor currency units

	// PriceTable maps a work-item label (window area) to its unit price in
	// minor currency units for this tier. Items missing from the table
	// price at zero.
	PriceTable map[string]int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceShade is a selectable tint shade for a service. Shades are toggled,
// never deleted: an existing booking keeps the label it was created with
// even after the shade is disabled.
type ServiceShade struct {
	ID        int64
	ServiceID int64
	Label     string
	Enabled   bool
}

package list_bookings

import (
	"fmt"
	"time"

	"github.com/johntint/booking-service/internal/domain"
)

// BookingResponse HTTP response model админского представления бронирования
type BookingResponse struct {
	ID                 int64    `json:"id"`
	CustomerName       string   `json:"customerName"`
	CustomerPhone      string   `json:"customerPhone"`
	CustomerEmail      *string  `json:"customerEmail,omitempty"`
	Vehicle            *string  `json:"vehicle,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	Date               string   `json:"date"`
	StartTime          string   `json:"startTime"`
	StartTimeLabel     string   `json:"startTimeLabel"`
	ServiceID          int64    `json:"serviceId"`
	ServiceName        string   `json:"serviceName"`
	Shades             []string `json:"shades"`
	WindowAreas        []string `json:"windowAreas"`
	TotalAmount        int64    `json:"totalAmount"`
	DepositAmount      int64    `json:"depositAmount"`
	RemainingAmount    int64    `json:"remainingAmount"`
	Currency           string   `json:"currency"`
	Status             string   `json:"status"`
	DepositPaymentRef  *string  `json:"depositPaymentRef,omitempty"`
	FinalPaymentRef    *string  `json:"finalPaymentRef,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// BookingsListResponse HTTP response model
type BookingsListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в HTTP response
func FromDomainBooking(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		Vehicle:            b.Vehicle,
		Notes:              b.Notes,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		StartTimeLabel:     b.StartTime.Label12(),
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		Shades:             b.Shades,
		WindowAreas:        b.WindowAreas,
		TotalAmount:        b.TotalAmount,
		DepositAmount:      b.DepositAmount,
		RemainingAmount:    b.RemainingAmount(),
		Currency:           b.Currency,
		Status:             string(b.Status),
		DepositPaymentRef:  b.DepositPaymentRef,
		FinalPaymentRef:    b.FinalPaymentRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// ParseFilter разбирает query-параметры админского фильтра
func ParseFilter(get func(string) string) (*domain.BookingsFilter, error) {
	filter := &domain.BookingsFilter{}

	if raw := get("from"); raw != "" {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q", raw)
		}
		filter.StartDate = &d
	}

	if raw := get("to"); raw != "" {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q", raw)
		}
		filter.EndDate = &d
	}

	if raw := get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status %q", raw)
		}
		filter.Status = &status
		filter.IncludeInactive = true
	}

	if raw := get("search"); raw != "" {
		filter.Search = &raw
	}

	if get("includeInactive") == "true" {
		filter.IncludeInactive = true
	}

	return filter, nil
}

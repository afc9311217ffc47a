package create_booking

import (
	"time"

	"github.com/johntint/booking-service/internal/domain"
	createBooking "github.com/johntint/booking-service/internal/usecase/create_booking"
	"github.com/johntint/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
	CustomerEmail *string  `json:"customerEmail,omitempty"`
	Vehicle       *string  `json:"vehicle,omitempty"` // марка/модель автомобиля
	Notes         *string  `json:"notes,omitempty"`
	Date          string   `json:"date"`      // "2026-03-07"
	StartTime     string   `json:"startTime"` // "10:00"
	ServiceID     int64    `json:"serviceId"`
	Shades        []string `json:"shades"`
	WindowAreas   []string `json:"windowAreas"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	ServiceID     int64    `json:"serviceId"`
	ServiceName   string   `json:"serviceName"`
	Shades        []string `json:"shades"`
	WindowAreas   []string `json:"windowAreas"`
	TotalAmount   int64    `json:"totalAmount"`
	DepositAmount int64    `json:"depositAmount"`
	Currency      string   `json:"currency"`
	Status        string   `json:"status"`
	CheckoutURL   *string  `json:"checkoutUrl,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Vehicle:       r.Vehicle,
		Notes:         r.Notes,
		Date:          date,
		StartTime:     startTime,
		ServiceID:     r.ServiceID,
		Shades:        r.Shades,
		WindowAreas:   r.WindowAreas,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		Shades:        resp.Shades,
		WindowAreas:   resp.WindowAreas,
		TotalAmount:   resp.TotalAmount,
		DepositAmount: resp.DepositAmount,
		Currency:      resp.Currency,
		Status:        resp.Status,
		CheckoutURL:   resp.CheckoutURL,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/domain"
	getAvailability "github.com/johntint/booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidDate = "invalid date, expected YYYY-MM-DD"
	msgDateTooFar  = "date is too far in the future"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	Time  string `json:"time"`  // "14:00"
	Label string `json:"label"` // "2:00 PM"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date   string         `json:"date"`
	Closed bool           `json:"closed"`
	Slots  []SlotResponse `json:"slots"`
}

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", raw, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		default:
			h.logger.Error("GET /availability - Failed to compute availability for %s: %v", raw, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := AvailabilityResponse{
		Date:   result.Date.Format(domain.DateFormat),
		Closed: result.Closed,
		Slots:  make([]SlotResponse, 0, len(result.Slots)),
	}
	for _, slot := range result.Slots {
		response.Slots = append(response.Slots, SlotResponse{Time: slot.Time.String(), Label: slot.Label})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

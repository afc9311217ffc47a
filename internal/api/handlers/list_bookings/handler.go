package list_bookings

import (
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?from=&to=&status=&search=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query().Get)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	bookings, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := BookingsListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		response.Bookings = append(response.Bookings, FromDomainBooking(b))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

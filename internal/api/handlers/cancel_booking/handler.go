package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/api/handlers/list_bookings"
	"github.com/johntint/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgNotCancellable     = "the booking cannot be cancelled in its current status"
	msgReasonTooLong      = "the cancellation reason is too long"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	Reason string `json:"reason"`
}

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

// Handle PATCH /api/v1/admin/bookings/{id}/cancel
// Отмена без возврата: для возврата депозита есть отдельная операция
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrNotCancellable):
			handlers.RespondError(w, http.StatusConflict, msgNotCancellable)
		case errors.Is(err, bookings.ErrReasonTooLong):
			handlers.RespondBadRequest(w, msgReasonTooLong)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/cancel - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/cancel - Booking id=%d cancelled", bookingID)
	handlers.RespondJSON(w, http.StatusOK, list_bookings.FromDomainBooking(booking))
}

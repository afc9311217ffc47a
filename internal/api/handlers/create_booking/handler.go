package create_booking

import (
	"errors"
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
	createBooking "github.com/johntint/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgSlotUnavailable    = "the selected time slot is no longer available"
	msgServiceNotFound    = "service not found"
	msgShadeUnavailable   = "one of the selected shades is not available"
	msgSelectionRequired  = "at least one shade and one window area are required"
	msgShopClosed         = "the shop is closed on the selected date"
	msgInvalidTimeSlot    = "the selected time is not offered on this date"
	msgInvalidDate        = "invalid booking date"
	msgDateTooFar         = "the selected date is too far in the future"
	msgPaymentInit        = "the booking was created but the payment could not be started, please contact the shop"
)

type Handler struct {
	useCase CreateBookingUseCase
	counter BookingCounter
	logger  Logger
}

// NewHandler создает новый обработчик создания бронирования
// counter может быть nil, если метрики выключены
func NewHandler(useCase CreateBookingUseCase, counter BookingCounter, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		counter: counter,
		logger:  logger,
	}
}

func (h *Handler) countCreated() {
	if h.counter != nil {
		h.counter.IncBookingCreated()
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrShadeUnavailable):
			handlers.RespondBadRequest(w, msgShadeUnavailable)

		case errors.Is(err, createBooking.ErrSelectionRequired):
			handlers.RespondBadRequest(w, msgSelectionRequired)

		case errors.Is(err, createBooking.ErrShopClosed):
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrPaymentInit):
			// Бронирование создано и держит слот; платёж можно выставить позже
			h.logger.Error("POST /bookings - Payment init failed: %v", err)
			if result != nil {
				h.countCreated()
				response := FromUseCaseResponse(result)
				handlers.RespondJSON(w, http.StatusCreated, response)
				return
			}
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentInit)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.countCreated()
	h.logger.Info("POST /bookings - Booking created: booking_id=%d, date=%s, time=%s",
		result.ID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package refund_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/johntint/booking-service/internal/api/handlers"
	refundDeposit "github.com/johntint/booking-service/internal/usecase/refund_deposit"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgNoDepositPayment   = "the booking has no refundable deposit payment"
	msgAlreadyProcessed   = "the booking is already cancelled or refunded"
	msgRefundFailed       = "the refund could not be processed, please try again"
)

// RefundRequest HTTP request model
type RefundRequest struct {
	Reason string `json:"reason"`
}

// RefundResponse HTTP response model
type RefundResponse struct {
	BookingID      int64  `json:"bookingId"`
	RefundID       string `json:"refundId"`
	RefundedAmount int64  `json:"refundedAmount"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
}

type Handler struct {
	useCase RefundDepositUseCase
	logger  Logger
}

func NewHandler(useCase RefundDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{id}/refund-deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/refund-deposit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &refundDeposit.Request{
		BookingID: bookingID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, refundDeposit.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, refundDeposit.ErrNoDepositPayment):
			handlers.RespondError(w, http.StatusConflict, msgNoDepositPayment)
		case errors.Is(err, refundDeposit.ErrAlreadyProcessed):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyProcessed)
		case errors.Is(err, refundDeposit.ErrRefundFailed):
			h.logger.Error("POST /admin/bookings/{id}/refund-deposit - Provider refund failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)
		default:
			h.logger.Error("POST /admin/bookings/{id}/refund-deposit - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/refund-deposit - Booking id=%d refunded, refund_id=%s",
		bookingID, result.RefundID)
	handlers.RespondJSON(w, http.StatusOK, RefundResponse{
		BookingID:      result.BookingID,
		RefundID:       result.RefundID,
		RefundedAmount: result.RefundedAmount,
		Currency:       result.Currency,
		Status:         result.Status,
	})
}

package request_final_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/johntint/booking-service/internal/api/handlers"
	requestFinalPayment "github.com/johntint/booking-service/internal/usecase/request_final_payment"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgNotFound         = "booking not found"
	msgDepositNotPaid   = "the deposit has not been paid yet"
	msgNothingToPay     = "there is nothing left to pay"
	msgNoCustomerEmail  = "the booking has no customer email to send the payment link to"
	msgPaymentInit      = "failed to start the payment, please try again"
)

// FinalPaymentResponse HTTP response model
type FinalPaymentResponse struct {
	BookingID       int64  `json:"bookingId"`
	RemainingAmount int64  `json:"remainingAmount"`
	Currency        string `json:"currency"`
	CheckoutURL     string `json:"checkoutUrl"`
}

type Handler struct {
	useCase RequestFinalPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RequestFinalPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{id}/request-final-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestFinalPayment.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, requestFinalPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, requestFinalPayment.ErrDepositNotPaid):
			handlers.RespondError(w, http.StatusConflict, msgDepositNotPaid)
		case errors.Is(err, requestFinalPayment.ErrNothingToPay):
			handlers.RespondError(w, http.StatusConflict, msgNothingToPay)
		case errors.Is(err, requestFinalPayment.ErrNoCustomerEmail):
			handlers.RespondError(w, http.StatusConflict, msgNoCustomerEmail)
		case errors.Is(err, requestFinalPayment.ErrPaymentInit):
			h.logger.Error("POST /admin/bookings/{id}/request-final-payment - Payment init failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentInit)
		default:
			h.logger.Error("POST /admin/bookings/{id}/request-final-payment - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/request-final-payment - Link issued for booking id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FinalPaymentResponse{
		BookingID:       result.BookingID,
		RemainingAmount: result.RemainingAmount,
		Currency:        result.Currency,
		CheckoutURL:     result.CheckoutURL,
	})
}

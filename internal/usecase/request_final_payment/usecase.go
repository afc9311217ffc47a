package request_final_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
)

// Request модель запроса на выставление финального платежа
type Request struct {
	BookingID int64
}

// Response модель ответа со ссылкой на оплату остатка
type Response struct {
	BookingID       int64
	RemainingAmount int64
	Currency        string
	CheckoutURL     string
}

// UseCase use case выставления финального платежа по бронированию
// Доступен админу после выполнения работ: клиент получает ссылку на остаток
type UseCase struct {
	bookingRepo   BookingRepository
	paymentClient PaymentClient
	notifier      Notifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentClient PaymentClient,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		paymentClient: paymentClient,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute выполняет use case выставления финального платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestFinalPayment: booking id=%d", req.BookingID)

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RequestFinalPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RequestFinalPayment: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 2. Финальный платёж возможен только после оплаты депозита
	if booking.Status != domain.StatusDepositPaid {
		uc.logger.Warn("RequestFinalPayment: booking id=%d is in status %s", booking.ID, booking.Status)
		return nil, ErrDepositNotPaid
	}

	remaining := booking.RemainingAmount()
	if remaining <= 0 {
		uc.logger.Warn("RequestFinalPayment: booking id=%d has no remaining amount", booking.ID)
		return nil, ErrNothingToPay
	}

	if booking.CustomerEmail == nil || *booking.CustomerEmail == "" {
		uc.logger.Warn("RequestFinalPayment: booking id=%d has no customer email", booking.ID)
		return nil, ErrNoCustomerEmail
	}

	// 3. Открываем платёжную сессию на остаток
	url, err := uc.paymentClient.CreateCheckoutSession(ctx, stripepay.CheckoutRequest{
		BookingID:     booking.ID,
		Kind:          stripepay.KindFinal,
		Amount:        remaining,
		Currency:      booking.Currency,
		Description:   fmt.Sprintf("%s balance - %s %s", booking.ServiceName, booking.Date.Format(domain.DateFormat), booking.StartTime.Label12()),
		CustomerEmail: booking.CustomerEmail,
	})
	if err != nil {
		uc.logger.Error("RequestFinalPayment: checkout session failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	// 4. Отправляем клиенту ссылку на оплату
	// Лучшая попытка: ссылка возвращается админу в любом случае
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s service is complete. Please pay the remaining balance:</p><p><a href=%q>Pay now</a></p>",
		booking.CustomerName, booking.ServiceName, url)
	if err := uc.notifier.Send(*booking.CustomerEmail, "Final payment for your appointment", body); err != nil {
		uc.logger.Warn("RequestFinalPayment: notification failed for booking id=%d: %v", booking.ID, err)
	}

	uc.logger.Info("RequestFinalPayment: payment link issued for booking id=%d, amount=%d", booking.ID, remaining)

	return &Response{
		BookingID:       booking.ID,
		RemainingAmount: remaining,
		Currency:        booking.Currency,
		CheckoutURL:     url,
	}, nil
}

package refund_deposit

import (
	"context"
	"errors"
	"fmt"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
)

// Request модель запроса на возврат депозита с отменой
type Request struct {
	BookingID int64
	Reason    string
}

// Response модель ответа на возврат депозита
type Response struct {
	BookingID      int64
	RefundID       string
	RefundedAmount int64
	Currency       string
	Status         string
}

// UseCase use case отмены бронирования с возвратом депозита
//
// Возврат у провайдера выполняется до смены статуса: если провайдер упал,
// бронирование остаётся как было и операцию можно повторить. Обратный
// порядок оставил бы отменённое бронирование с невозвращённым депозитом
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

// Execute выполняет use case возврата депозита с отменой бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RefundDeposit: booking id=%d", req.BookingID)

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RefundDeposit: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RefundDeposit: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 2. Возврат возможен только для бронирований с оплаченным депозитом
	if booking.IsCancelled() {
		uc.logger.Warn("RefundDeposit: booking id=%d is already %s", booking.ID, booking.Status)
		return nil, ErrAlreadyProcessed
	}
	if booking.DepositPaymentRef == nil || *booking.DepositPaymentRef == "" {
		uc.logger.Warn("RefundDeposit: booking id=%d has no deposit payment", booking.ID)
		return nil, ErrNoDepositPayment
	}

	// 3. Возврат у провайдера
	refundID, err := uc.paymentClient.RefundPayment(ctx, *booking.DepositPaymentRef)
	if err != nil {
		uc.logger.Error("RefundDeposit: provider refund failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	// 4. Переводим бронирование в отменено-с-возвратом
	reason := req.Reason
	applied, err := uc.bookingRepo.UpdateStatusIf(ctx, booking.ID,
		[]domain.BookingStatus{domain.StatusDepositPaid, domain.StatusAwaitingDeposit},
		domain.StatusCancelledRefunded,
		&bookingRepo.StatusExtra{CancellationReason: &reason, SetCancelledAt: true},
	)
	if err != nil {
		uc.logger.Error("RefundDeposit: status update failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: status update failed: %v", ErrInternal, err)
	}
	if !applied {
		// Вебхук charge.refunded успел обработаться раньше нас
		uc.logger.Info("RefundDeposit: booking id=%d already moved to refunded state", booking.ID)
	}

	uc.notifyRefund(booking)

	uc.logger.Info("RefundDeposit: booking id=%d refunded, refund_id=%s, amount=%d",
		booking.ID, refundID, booking.DepositAmount)

	return &Response{
		BookingID:      booking.ID,
		RefundID:       refundID,
		RefundedAmount: booking.DepositAmount,
		Currency:       booking.Currency,
		Status:         string(domain.StatusCancelledRefunded),
	}, nil
}

// notifyRefund отправляет клиенту письмо о возврате
// Лучшая попытка: ошибка отправки не откатывает возврат
func (uc *UseCase) notifyRefund(b *domain.Booking) {
	if b.CustomerEmail == nil || *b.CustomerEmail == "" {
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s appointment on %s at %s has been cancelled and your deposit refunded.</p><p>The refund may take a few business days to appear on your statement.</p>",
		b.CustomerName, b.ServiceName, b.Date.Format("January 2, 2006"), b.StartTime.Label12())

	if err := uc.notifier.Send(*b.CustomerEmail, "Your deposit has been refunded", body); err != nil {
		uc.logger.Warn("RefundDeposit: notification failed for booking id=%d: %v", b.ID, err)
	}
}

package payment_events

import (
	"context"
	"errors"
	"fmt"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
	"github.com/johntint/booking-service/internal/integrations/stripepay"
)

// UseCase use case обработки платёжных событий провайдера
//
// Провайдер доставляет события минимум один раз и без гарантии порядка,
// поэтому каждый переход выполняется условным обновлением статуса:
// повторная доставка не проходит условие и завершается без эффекта
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute применяет платёжное событие к жизненному циклу бронирования
// Незнакомые события и события по неизвестным бронированиям подтверждаются
// без эффекта, чтобы провайдер не ретраил их бесконечно
func (uc *UseCase) Execute(ctx context.Context, event *stripepay.PaymentEvent) (*Result, error) {
	switch event.Type {
	case stripepay.EventPaymentCompleted:
		return uc.handlePaymentCompleted(ctx, event)
	case stripepay.EventRefunded:
		return uc.handleRefunded(ctx, event)
	default:
		uc.logger.Info("PaymentEvents: ignoring event type=%s", event.RawType)
		return &Result{}, nil
	}
}

func (uc *UseCase) handlePaymentCompleted(ctx context.Context, event *stripepay.PaymentEvent) (*Result, error) {
	uc.logger.Info("PaymentEvents: payment completed: booking_id=%d, kind=%s, ref=%s",
		event.BookingID, event.Kind, event.PaymentRef)

	var (
		expected  []domain.BookingStatus
		newStatus domain.BookingStatus
		extra     bookingRepo.StatusExtra
	)

	switch event.Kind {
	case stripepay.KindDeposit:
		expected = []domain.BookingStatus{domain.StatusPending, domain.StatusAwaitingDeposit}
		newStatus = domain.StatusDepositPaid
		extra.DepositPaymentRef = &event.PaymentRef
	case stripepay.KindFinal:
		expected = []domain.BookingStatus{domain.StatusDepositPaid}
		newStatus = domain.StatusFinalPaid
		extra.FinalPaymentRef = &event.PaymentRef
	default:
		uc.logger.Warn("PaymentEvents: unknown payment kind %q for booking id=%d", event.Kind, event.BookingID)
		return &Result{}, nil
	}

	applied, err := uc.bookingRepo.UpdateStatusIf(ctx, event.BookingID, expected, newStatus, &extra)
	if err != nil {
		uc.logger.Error("PaymentEvents: status update failed for booking id=%d: %v", event.BookingID, err)
		return nil, fmt.Errorf("%w: status update failed: %v", ErrInternal, err)
	}
	if !applied {
		// Повторная доставка либо статус уже ушёл дальше
		uc.logger.Info("PaymentEvents: no-op for booking id=%d, kind=%s", event.BookingID, event.Kind)
		return &Result{BookingID: event.BookingID}, nil
	}

	uc.notifyPayment(ctx, event.BookingID, newStatus)

	uc.logger.Info("PaymentEvents: booking id=%d moved to %s", event.BookingID, newStatus)
	return &Result{Applied: true, BookingID: event.BookingID, NewStatus: newStatus}, nil
}

func (uc *UseCase) handleRefunded(ctx context.Context, event *stripepay.PaymentEvent) (*Result, error) {
	uc.logger.Info("PaymentEvents: refund received: ref=%s", event.PaymentRef)

	if event.PaymentRef == "" {
		uc.logger.Warn("PaymentEvents: refund event without payment reference")
		return &Result{}, nil
	}

	booking, err := uc.bookingRepo.GetByPaymentRef(ctx, event.PaymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Возврат по платежу, которого мы не знаем: подтверждаем и идём дальше
			uc.logger.Warn("PaymentEvents: no booking for refunded payment ref=%s", event.PaymentRef)
			return &Result{}, nil
		}
		uc.logger.Error("PaymentEvents: lookup by payment ref=%s failed: %v", event.PaymentRef, err)
		return nil, fmt.Errorf("%w: lookup by payment ref failed: %v", ErrInternal, err)
	}

	applied, err := uc.bookingRepo.UpdateStatusIf(ctx, booking.ID,
		[]domain.BookingStatus{domain.StatusAwaitingDeposit, domain.StatusDepositPaid},
		domain.StatusCancelledRefunded,
		&bookingRepo.StatusExtra{SetCancelledAt: true},
	)
	if err != nil {
		uc.logger.Error("PaymentEvents: refund status update failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: refund status update failed: %v", ErrInternal, err)
	}
	if !applied {
		// Возврат, инициированный нами, уже перевёл бронирование
		uc.logger.Info("PaymentEvents: refund no-op for booking id=%d", booking.ID)
		return &Result{BookingID: booking.ID}, nil
	}

	uc.notifyPayment(ctx, booking.ID, domain.StatusCancelledRefunded)

	uc.logger.Info("PaymentEvents: booking id=%d moved to %s", booking.ID, domain.StatusCancelledRefunded)
	return &Result{Applied: true, BookingID: booking.ID, NewStatus: domain.StatusCancelledRefunded}, nil
}

// notifyPayment отправляет письма клиенту и магазину после перехода
// Лучшая попытка: ошибки логируются и не влияют на результат
func (uc *UseCase) notifyPayment(ctx context.Context, bookingID int64, status domain.BookingStatus) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Warn("PaymentEvents: cannot load booking id=%d for notification: %v", bookingID, err)
		return
	}

	var subject, body string
	when := fmt.Sprintf("%s at %s", booking.Date.Format("January 2, 2006"), booking.StartTime.Label12())

	switch status {
	case domain.StatusDepositPaid:
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your deposit has been received. Your %s appointment on %s is confirmed.</p>",
			booking.CustomerName, booking.ServiceName, when)
	case domain.StatusFinalPaid:
		subject = "Payment received - thank you"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your final payment has been received for the %s appointment on %s.</p>",
			booking.CustomerName, booking.ServiceName, when)
	case domain.StatusCancelledRefunded:
		subject = "Your deposit has been refunded"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your %s appointment on %s has been cancelled and your deposit refunded.</p>",
			booking.CustomerName, booking.ServiceName, when)
	default:
		return
	}

	if booking.CustomerEmail != nil && *booking.CustomerEmail != "" {
		if err := uc.notifier.Send(*booking.CustomerEmail, subject, body); err != nil {
			uc.logger.Warn("PaymentEvents: customer notification failed for booking id=%d: %v", bookingID, err)
		}
	}

	shopBody := fmt.Sprintf("<p>Booking #%d (%s, %s) is now %s.</p>",
		booking.ID, booking.CustomerName, when, status)
	if err := uc.notifier.NotifyShop(fmt.Sprintf("Booking #%d: %s", booking.ID, status), shopBody); err != nil {
		uc.logger.Warn("PaymentEvents: shop notification failed for booking id=%d: %v", bookingID, err)
	}
}

package bookings

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/johntint/booking-service/internal/domain"
	bookingRepo "github.com/johntint/booking-service/internal/infra/storage/booking"
)

// Service админский сервис работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// List возвращает бронирования по фильтру
// Поддерживает диапазон дат, статус и поиск по имени/телефону клиента
func (s *Service) List(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error) {
	list, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(list))
	return list, nil
}

// ExportCSV выгружает бронирования по фильтру в CSV
// Формат строк стабилен: его читают внешние таблицы учёта
func (s *Service) ExportCSV(ctx context.Context, filter *domain.BookingsFilter) ([]byte, error) {
	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Date", "Time", "Customer", "Phone", "Email",
		"Service", "Shades", "Window Areas",
		"Total", "Deposit", "Currency", "Status", "Created At",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: ExportCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range list {
		email := ""
		if b.CustomerEmail != nil {
			email = *b.CustomerEmail
		}
		row := []string{
			strconv.FormatInt(b.ID, 10),
			b.Date.Format(domain.DateFormat),
			b.StartTime.Label12(),
			b.CustomerName,
			b.CustomerPhone,
			email,
			b.ServiceName,
			strings.Join(b.Shades, "; "),
			strings.Join(b.WindowAreas, "; "),
			formatAmount(b.TotalAmount),
			formatAmount(b.DepositAmount),
			b.Currency,
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%w: ExportCSV - write row: %v", ErrInternal, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: ExportCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("ExportCSV: exported %d bookings", len(list))
	return buf.Bytes(), nil
}

// Cancel отменяет бронирование без возврата депозита
// Разрешено только из активных неоплаченных до конца статусов
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if len(reason) > domain.MaxCancelReasonLength {
		return nil, ErrReasonTooLong
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", id, booking.Status)
		return nil, ErrNotCancellable
	}

	applied, err := s.bookingRepo.UpdateStatusIf(ctx, id,
		[]domain.BookingStatus{domain.StatusPending, domain.StatusAwaitingDeposit, domain.StatusDepositPaid},
		domain.StatusCancelled,
		&bookingRepo.StatusExtra{CancellationReason: &reason, SetCancelledAt: true},
	)
	if err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if !applied {
		// Статус изменился между чтением и записью
		s.logger.Warn("Cancel: booking id=%d status changed concurrently", id)
		return nil, ErrNotCancellable
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyCancellation(updated, reason)

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return updated, nil
}

// notifyCancellation отправляет клиенту письмо об отмене
// Лучшая попытка: ошибка отправки не откатывает отмену
func (s *Service) notifyCancellation(b *domain.Booking, reason string) {
	if b.CustomerEmail == nil || *b.CustomerEmail == "" {
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s appointment on %s at %s has been cancelled.</p>",
		b.CustomerName, b.ServiceName, b.Date.Format("January 2, 2006"), b.StartTime.Label12(),
	)
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}

	if err := s.notifier.Send(*b.CustomerEmail, "Your appointment has been cancelled", body); err != nil {
		s.logger.Warn("notifyCancellation: booking id=%d: %v", b.ID, err)
	}
}

func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

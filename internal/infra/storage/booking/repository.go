package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/johntint/booking-service/internal/domain"
	"github.com/johntint/booking-service/pkg/dbmetrics"
	"github.com/johntint/booking-service/pkg/psqlbuilder"
)

// slotUniqueConstraint имя частичного уникального индекса на (booking_date, start_time)
// для активных бронирований (см. migrations/000001_init_schema.up.sql)
const slotUniqueConstraint = "bookings_active_slot_uniq"

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"vehicle",
	"notes",
	"booking_date",
	"start_time",
	"service_id",
	"service_name",
	"shades",
	"window_areas",
	"total_amount",
	"deposit_amount",
	"currency",
	"status",
	"deposit_payment_ref",
	"final_payment_ref",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Уникальность слота обеспечивается частичным уникальным индексом на уровне БД:
// конкурирующая вставка на ту же пару (date, start_time) получает 23505,
// который транслируется в ErrSlotTaken - вызывающая сторона сообщает клиенту,
// что слот недоступен, а не о внутренней ошибке.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_phone",
			"customer_email",
			"vehicle",
			"notes",
			"booking_date",
			"start_time",
			"service_id",
			"service_name",
			"shades",
			"window_areas",
			"total_amount",
			"deposit_amount",
			"currency",
			"status",
		).
		Values(
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
			booking.Vehicle,
			booking.Notes,
			booking.Date,
			booking.StartTime,
			booking.ServiceID,
			booking.ServiceName,
			pq.Array(booking.Shades),
			pq.Array(booking.WindowAreas),
			booking.TotalAmount,
			booking.DepositAmount,
			booking.Currency,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == slotUniqueConstraint {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByDate получает все активные (не отмененные) бронирования на дату
// Используется резолвером доступности и проверкой конфликтов при создании.
// Внутри транзакции блокирует строки (FOR UPDATE) для сериализации check-then-insert
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": inactive}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPaymentRef ищет бронирование по идентификатору платежа провайдера
// (депозитного или финального)
func (r *Repository) GetByPaymentRef(ctx context.Context, ref string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"deposit_payment_ref": ref},
			squirrel.Eq{"final_payment_ref": ref},
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentRef - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByPaymentRef - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// StatusExtra дополнительные поля, устанавливаемые вместе с переходом статуса
type StatusExtra struct {
	DepositPaymentRef  *string
	FinalPaymentRef    *string
	CancellationReason *string
	SetCancelledAt     bool
}

// UpdateStatusIf выполняет условный переход статуса: UPDATE применяется только
// если текущий статус входит в expected. Возвращает false без ошибки, когда
// предусловие не выполнено - вызывающая сторона трактует это как no-op
// (гарантия идемпотентности при повторной доставке платежных событий)
func (r *Repository) UpdateStatusIf(
	ctx context.Context,
	id int64,
	expected []domain.BookingStatus,
	newStatus domain.BookingStatus,
	extra *StatusExtra,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if extra == nil {
		extra = &StatusExtra{}
	}

	expectedStrings := make([]string, len(expected))
	for i, s := range expected {
		expectedStrings[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", newStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expectedStrings})

	if extra.DepositPaymentRef != nil {
		updateBuilder = updateBuilder.Set("deposit_payment_ref", *extra.DepositPaymentRef)
	}
	if extra.FinalPaymentRef != nil {
		updateBuilder = updateBuilder.Set("final_payment_ref", *extra.FinalPaymentRef)
	}
	if extra.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *extra.CancellationReason)
	}
	if extra.SetCancelledAt {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией для админки
// Поддерживает фильтрацию по периоду, статусу, поиску по имени/телефону
// и включению неактивных бронирований
func (r *Repository) ListWithFilter(ctx context.Context, filter *domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if filter == nil {
		filter = &domain.BookingsFilter{}
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"customer_phone": pattern},
		})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var shades, windowAreas pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CustomerEmail,
		&booking.Vehicle,
		&booking.Notes,
		&booking.Date,
		&booking.StartTime,
		&booking.ServiceID,
		&booking.ServiceName,
		&shades,
		&windowAreas,
		&booking.TotalAmount,
		&booking.DepositAmount,
		&booking.Currency,
		&booking.Status,
		&booking.DepositPaymentRef,
		&booking.FinalPaymentRef,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Shades = shades
	booking.WindowAreas = windowAreas
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

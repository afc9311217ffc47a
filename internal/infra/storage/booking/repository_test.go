package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
	"github.com/johntint/booking-service/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create_TranslatesSlotConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Конкурирующая вставка на тот же слот: 23505 по частичному индексу
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: slotUniqueConstraint})

	_, err := repo.Create(context.Background(), &domain.Booking{
		CustomerName:  "Jane Roe",
		CustomerPhone: "555-0101",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		ServiceID:     1,
		ServiceName:   "Ceramic Tint",
		Shades:        []string{"5%"},
		WindowAreas:   []string{"Front doors"},
		TotalAmount:   6000,
		DepositAmount: 3000,
		Currency:      "usd",
		Status:        domain.StatusAwaitingDeposit,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherUniqueViolationIsNotSlotTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "some_other_constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		CustomerName:  "Jane Roe",
		CustomerPhone: "555-0101",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        domain.StatusPending,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Create_ReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		CustomerName:  "John Doe",
		CustomerPhone: "555-0102",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "11:00",
		Status:        domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusIf_PreconditionMismatchIsNoOp(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Статус уже не в expected - UPDATE не затрагивает строк
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.UpdateStatusIf(
		context.Background(),
		42,
		[]domain.BookingStatus{domain.StatusAwaitingDeposit},
		domain.StatusDepositPaid,
		&StatusExtra{DepositPaymentRef: ptr.Ptr("pi_123")},
	)

	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusIf_Applied(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.UpdateStatusIf(
		context.Background(),
		42,
		[]domain.BookingStatus{domain.StatusPending, domain.StatusAwaitingDeposit},
		domain.StatusDepositPaid,
		&StatusExtra{DepositPaymentRef: ptr.Ptr("pi_123")},
	)

	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/johntint/booking-service/internal/domain"
	"github.com/johntint/booking-service/pkg/dbmetrics"
	"github.com/johntint/booking-service/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога услуг и оттенков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListServices возвращает все услуги в порядке создания
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "description", "base_price", "price_table", "created_at", "updated_at",
	).
		From("services").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetServiceByID получает услугу по ID вместе с её таблицей цен
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "description", "base_price", "price_table", "created_at", "updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return svc, nil
}

// ListShades возвращает оттенки услуги
// enabledOnly=true ограничивает выборку включенными оттенками (публичный путь)
func (r *Repository) ListShades(ctx context.Context, serviceID int64, enabledOnly bool) ([]*domain.ServiceShade, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "service_id", "label", "enabled").
		From("service_shades").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("label ASC")

	if enabledOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"enabled": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListShades - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListShades - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shades := make([]*domain.ServiceShade, 0)
	for rows.Next() {
		var shade domain.ServiceShade
		if err := rows.Scan(&shade.ID, &shade.ServiceID, &shade.Label, &shade.Enabled); err != nil {
			return nil, fmt.Errorf("%w: ListShades - scan row: %v", ErrScanRow, err)
		}
		shades = append(shades, &shade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListShades - rows error: %v", ErrScanRow, err)
	}

	return shades, nil
}

// ToggleShade включает/выключает оттенок услуги
// Оттенки никогда не удаляются - существующие бронирования сохраняют
// выбранный лейбл даже после отключения
func (r *Repository) ToggleShade(ctx context.Context, shadeID int64, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_shades").
		Set("enabled", enabled).
		Where(squirrel.Eq{"id": shadeID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ToggleShade - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ToggleShade - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ToggleShade - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShadeNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var priceTable []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.BasePrice,
		&priceTable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(priceTable, &svc.PriceTable); err != nil {
		return nil, fmt.Errorf("invalid price_table json: %w", err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

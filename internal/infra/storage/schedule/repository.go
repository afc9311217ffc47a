package schedule

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

// configRowID единственная строка конфигурации расписания
const configRowID = 1

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации расписания (singleton строка с JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("data", "updated_at").
		From("schedule_config").
		Where(squirrel.Eq{"id": configRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var data []byte
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	var cfg domain.ScheduleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Get - invalid config json: %v", ErrScanRow, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Update сохраняет конфигурацию расписания (upsert единственной строки)
// и возвращает сохранённое состояние с меткой времени из БД
func (r *Repository) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal config: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns("id", "data", "updated_at").
		Values(configRowID, data, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build upsert query: %v", ErrBuildQuery, err)
	}

	stored := *cfg
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stored.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Update - execute upsert: %v", ErrExecQuery, err)
	}

	return &stored, nil
}

package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
	scheduleRepo "github.com/johntint/booking-service/internal/infra/storage/schedule"
	"github.com/johntint/booking-service/pkg/types"
)

// Репозиторий обязан удовлетворять контракту сервиса
var _ ScheduleRepository = (*scheduleRepo.Repository)(nil)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubRepo struct {
	cfg      *domain.ScheduleConfig
	getCalls int
}

func (r *stubRepo) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	r.getCalls++
	return r.cfg, nil
}

func (r *stubRepo) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	r.cfg = cfg
	return cfg, nil
}

func validConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ClosedWeekdays: []int{1},
		Groups: []domain.SlotGroup{
			{
				Key:      "weekday",
				Weekdays: []int{2, 3, 4, 5},
				Slots:    []types.TimeString{"14:00"},
			},
			{
				Key:      "saturday",
				Weekdays: []int{6},
				Slots:    []types.TimeString{"09:00", "10:00", "11:00"},
			},
		},
		Spacing: &domain.SpacingRule{DayGroup: "saturday", Minutes: 60},
	}
}

func TestService_Get_CachesConfig(t *testing.T) {
	repo := &stubRepo{cfg: validConfig()}
	svc := NewService(repo, noopLogger{})

	_, err := svc.Get(context.Background())
	require.NoError(t, err)
	_, err = svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls)
}

func TestService_Update_InvalidatesCache(t *testing.T) {
	repo := &stubRepo{cfg: validConfig()}
	svc := NewService(repo, noopLogger{})

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	next := validConfig()
	next.ClosedWeekdays = []int{0, 1}
	_, err = svc.Update(context.Background(), next)
	require.NoError(t, err)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got.ClosedWeekdays)
	assert.Equal(t, 1, repo.getCalls)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScheduleConfig)
	}{
		{
			name:   "closed weekday out of range",
			mutate: func(c *domain.ScheduleConfig) { c.ClosedWeekdays = []int{7} },
		},
		{
			name:   "no groups",
			mutate: func(c *domain.ScheduleConfig) { c.Groups = nil },
		},
		{
			name:   "duplicate group key",
			mutate: func(c *domain.ScheduleConfig) { c.Groups[1].Key = "weekday" },
		},
		{
			name:   "weekday in two groups",
			mutate: func(c *domain.ScheduleConfig) { c.Groups[1].Weekdays = []int{2, 6} },
		},
		{
			name: "malformed slot time",
			mutate: func(c *domain.ScheduleConfig) {
				c.Groups[0].Slots = []types.TimeString{"25:00"}
			},
		},
		{
			name: "duplicate slot in group",
			mutate: func(c *domain.ScheduleConfig) {
				c.Groups[0].Slots = []types.TimeString{"14:00", "14:00"}
			},
		},
		{
			name: "spacing references unknown group",
			mutate: func(c *domain.ScheduleConfig) {
				c.Spacing = &domain.SpacingRule{DayGroup: "sunday", Minutes: 60}
			},
		},
		{
			name: "non-positive spacing",
			mutate: func(c *domain.ScheduleConfig) {
				c.Spacing = &domain.SpacingRule{DayGroup: "saturday", Minutes: 0}
			},
		},
		{
			name: "spacing above limit",
			mutate: func(c *domain.ScheduleConfig) {
				c.Spacing = &domain.SpacingRule{DayGroup: "saturday", Minutes: domain.MaxSpacingMinutes + 1}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{cfg: validConfig()}
			svc := NewService(repo, noopLogger{})

			cfg := validConfig()
			tt.mutate(cfg)

			_, err := svc.Update(context.Background(), cfg)

			require.ErrorIs(t, err, ErrInvalidConfig)
			// Текущая конфигурация не тронута
			assert.Equal(t, []int{1}, repo.cfg.ClosedWeekdays)
		})
	}
}

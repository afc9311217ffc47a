package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/johntint/booking-service/internal/domain"
)

// Service сервис работы с расписанием магазина
// Конфигурация читается на каждый расчёт доступности, поэтому кешируется
// в памяти и инвалидируется при обновлении
type Service struct {
	repo   ScheduleRepository
	logger Logger

	mu     sync.RWMutex
	cached *domain.ScheduleConfig
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo ScheduleRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает текущую конфигурацию расписания
func (s *Service) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	s.mu.RLock()
	if s.cached != nil {
		cfg := s.cached
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.cached = cfg
	s.mu.Unlock()

	return cfg, nil
}

// Update валидирует и сохраняет новую конфигурацию расписания
// Невалидная конфигурация отклоняется целиком, текущая остаётся в силе
func (s *Service) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	s.logger.Info("Update: updating schedule config: groups=%d, closed=%v", len(cfg.Groups), cfg.ClosedWeekdays)

	if err := s.validate(cfg); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.cached = updated
	s.mu.Unlock()

	s.logger.Info("Update: schedule config updated")
	return updated, nil
}

// validate проверяет конфигурацию перед записью
// Чтение расчёта доступности полагается на то, что сохранённая
// конфигурация всегда корректна
func (s *Service) validate(cfg *domain.ScheduleConfig) error {
	for _, wd := range cfg.ClosedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: closed weekday %d out of range 0-6", ErrInvalidConfig, wd)
		}
	}

	if len(cfg.Groups) == 0 {
		return fmt.Errorf("%w: at least one slot group is required", ErrInvalidConfig)
	}

	groupKeys := make(map[string]bool, len(cfg.Groups))
	usedWeekdays := make(map[int]string)
	for _, group := range cfg.Groups {
		if group.Key == "" {
			return fmt.Errorf("%w: slot group key is empty", ErrInvalidConfig)
		}
		if groupKeys[group.Key] {
			return fmt.Errorf("%w: duplicate slot group %q", ErrInvalidConfig, group.Key)
		}
		groupKeys[group.Key] = true

		for _, wd := range group.Weekdays {
			if wd < 0 || wd > 6 {
				return fmt.Errorf("%w: group %q weekday %d out of range 0-6", ErrInvalidConfig, group.Key, wd)
			}
			if other, ok := usedWeekdays[wd]; ok {
				return fmt.Errorf("%w: weekday %d assigned to both %q and %q", ErrInvalidConfig, wd, other, group.Key)
			}
			usedWeekdays[wd] = group.Key
		}

		seenSlots := make(map[string]bool, len(group.Slots))
		for _, slot := range group.Slots {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("%w: group %q slot %q: %v", ErrInvalidConfig, group.Key, slot, err)
			}
			if seenSlots[slot.String()] {
				return fmt.Errorf("%w: group %q has duplicate slot %q", ErrInvalidConfig, group.Key, slot)
			}
			seenSlots[slot.String()] = true
		}
	}

	if rule := cfg.Spacing; rule != nil {
		if !groupKeys[rule.DayGroup] {
			return fmt.Errorf("%w: spacing rule references unknown group %q", ErrInvalidConfig, rule.DayGroup)
		}
		if rule.Minutes <= 0 {
			return fmt.Errorf("%w: spacing for group %q must be positive, got %d", ErrInvalidConfig, rule.DayGroup, rule.Minutes)
		}
		if rule.Minutes > domain.MaxSpacingMinutes {
			return fmt.Errorf("%w: spacing for group %q exceeds %d minutes", ErrInvalidConfig, rule.DayGroup, domain.MaxSpacingMinutes)
		}
	}

	return nil
}

package schedule

import "errors"

var (
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("schedule.service: internal error")
	// ErrInvalidConfig конфигурация расписания не прошла валидацию
	ErrInvalidConfig = errors.New("schedule.service: invalid schedule config")
)

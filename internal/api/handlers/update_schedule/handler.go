package update_schedule

import (
	"errors"
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/api/handlers/get_schedule"
	"github.com/johntint/booking-service/internal/domain"
	scheduleService "github.com/johntint/booking-service/internal/service/schedule"
	"github.com/johntint/booking-service/pkg/types"
)

const msgInvalidRequestBody = "invalid request body"

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	ClosedWeekdays []int          `json:"closedWeekdays"`
	Groups         []GroupRequest `json:"groups"`
	Spacing        *SpacingRequest `json:"spacing,omitempty"`
}

// GroupRequest HTTP request model
type GroupRequest struct {
	Key      string   `json:"key"`
	Weekdays []int    `json:"weekdays"`
	Slots    []string `json:"slots"`
}

// SpacingRequest HTTP request model
type SpacingRequest struct {
	DayGroup string `json:"dayGroup"`
	Minutes  int    `json:"minutes"`
}

type Handler struct {
	scheduleService ScheduleService
	logger          Logger
}

func NewHandler(scheduleService ScheduleService, logger Logger) *Handler {
	return &Handler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Handle PUT /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.scheduleService.Update(r.Context(), req.toDomainConfig())
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidConfig) {
			h.logger.Warn("PUT /admin/schedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /admin/schedule - Failed to update schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule - Schedule updated: groups=%d", len(updated.Groups))
	handlers.RespondJSON(w, http.StatusOK, get_schedule.FromDomainConfig(updated))
}

func (r *UpdateScheduleRequest) toDomainConfig() *domain.ScheduleConfig {
	cfg := &domain.ScheduleConfig{
		ClosedWeekdays: r.ClosedWeekdays,
		Groups:         make([]domain.SlotGroup, 0, len(r.Groups)),
	}

	for _, group := range r.Groups {
		slots := make([]types.TimeString, 0, len(group.Slots))
		for _, slot := range group.Slots {
			slots = append(slots, types.TimeString(slot))
		}
		cfg.Groups = append(cfg.Groups, domain.SlotGroup{
			Key:      group.Key,
			Weekdays: group.Weekdays,
			Slots:    slots,
		})
	}

	if r.Spacing != nil {
		cfg.Spacing = &domain.SpacingRule{DayGroup: r.Spacing.DayGroup, Minutes: r.Spacing.Minutes}
	}

	return cfg
}

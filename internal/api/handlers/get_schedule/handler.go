package get_schedule

import (
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/domain"
)

// GroupResponse HTTP response model
type GroupResponse struct {
	Key      string   `json:"key"`
	Weekdays []int    `json:"weekdays"`
	Slots    []string `json:"slots"`
}

// SpacingResponse HTTP response model
type SpacingResponse struct {
	DayGroup string `json:"dayGroup"`
	Minutes  int    `json:"minutes"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ClosedWeekdays []int            `json:"closedWeekdays"`
	Groups         []GroupResponse  `json:"groups"`
	Spacing        *SpacingResponse `json:"spacing,omitempty"`
}

type Handler struct {
	scheduleProvider ScheduleProvider
	logger           Logger
}

func NewHandler(scheduleProvider ScheduleProvider, logger Logger) *Handler {
	return &Handler{
		scheduleProvider: scheduleProvider,
		logger:           logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.scheduleProvider.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(cfg))
}

// FromDomainConfig конвертирует доменную конфигурацию в HTTP response
func FromDomainConfig(cfg *domain.ScheduleConfig) *ScheduleResponse {
	resp := &ScheduleResponse{
		ClosedWeekdays: cfg.ClosedWeekdays,
		Groups:         make([]GroupResponse, 0, len(cfg.Groups)),
	}

	for _, group := range cfg.Groups {
		slots := make([]string, 0, len(group.Slots))
		for _, slot := range group.Slots {
			slots = append(slots, slot.String())
		}
		resp.Groups = append(resp.Groups, GroupResponse{
			Key:      group.Key,
			Weekdays: group.Weekdays,
			Slots:    slots,
		})
	}

	if cfg.Spacing != nil {
		resp.Spacing = &SpacingResponse{DayGroup: cfg.Spacing.DayGroup, Minutes: cfg.Spacing.Minutes}
	}

	return resp
}

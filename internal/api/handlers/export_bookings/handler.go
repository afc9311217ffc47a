package export_bookings

import (
	"fmt"
	"net/http"
	"time"

	"github.com/johntint/booking-service/internal/api/handlers"
	"github.com/johntint/booking-service/internal/api/handlers/list_bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export?from=&to=&status=&search=
// Использует тот же фильтр, что и листинг
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := list_bookings.ParseFilter(r.URL.Query().Get)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	data, err := h.service.ExportCSV(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings/export - Failed to export: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

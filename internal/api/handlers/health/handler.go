package health

import (
	"context"
	"net/http"
	"time"

	"github.com/johntint/booking-service/internal/api/handlers"
)

// Pinger проверяет доступность БД
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse HTTP response model
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, status, resp)
}

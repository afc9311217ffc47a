package toggle_shade

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/johntint/booking-service/internal/api/handlers"
	catalogRepo "github.com/johntint/booking-service/internal/infra/storage/catalog"
)

const (
	msgInvalidShadeID     = "invalid shade id"
	msgInvalidRequestBody = "invalid request body"
	msgShadeNotFound      = "shade not found"
)

// ToggleShadeRequest HTTP request model
type ToggleShadeRequest struct {
	Enabled bool `json:"enabled"`
}

// ToggleShadeResponse HTTP response model
type ToggleShadeResponse struct {
	ID      int64 `json:"id"`
	Enabled bool  `json:"enabled"`
}

type Handler struct {
	catalogRepo CatalogRepository
	logger      Logger
}

func NewHandler(catalogRepo CatalogRepository, logger Logger) *Handler {
	return &Handler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Handle POST /api/v1/admin/shades/{id}/toggle
// Отключение действует на новые бронирования; существующие не трогаем
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shadeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || shadeID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidShadeID)
		return
	}

	var req ToggleShadeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/shades/{id}/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.catalogRepo.ToggleShade(r.Context(), shadeID, req.Enabled); err != nil {
		if errors.Is(err, catalogRepo.ErrShadeNotFound) {
			handlers.RespondNotFound(w, msgShadeNotFound)
			return
		}
		h.logger.Error("POST /admin/shades/{id}/toggle - Failed to toggle shade id=%d: %v", shadeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/shades/{id}/toggle - Shade id=%d enabled=%v", shadeID, req.Enabled)
	handlers.RespondJSON(w, http.StatusOK, ToggleShadeResponse{ID: shadeID, Enabled: req.Enabled})
}

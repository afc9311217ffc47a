package get_shades

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/johntint/booking-service/internal/api/handlers"
	catalogRepo "github.com/johntint/booking-service/internal/infra/storage/catalog"
	"github.com/johntint/booking-service/internal/domain"
)

const (
	msgInvalidServiceID  = "invalid service id"
	msgServiceNotFound   = "service not found"
)

// ShadeResponse HTTP response model
type ShadeResponse struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// ShadesListResponse HTTP response model
type ShadesListResponse struct {
	ServiceID int64           `json:"serviceId"`
	Shades    []ShadeResponse `json:"shades"`
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

// Handle GET /api/v1/services/{id}/shades
// Публичный эндпоинт: отдаёт только включенные тонировки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if _, err := h.catalogRepo.GetServiceByID(r.Context(), serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("GET /services/{id}/shades - Failed to get service id=%d: %v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	shades, err := h.catalogRepo.ListShades(r.Context(), serviceID, true)
	if err != nil {
		h.logger.Error("GET /services/{id}/shades - Failed to list shades for service id=%d: %v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := ShadesListResponse{ServiceID: serviceID, Shades: make([]ShadeResponse, 0, len(shades))}
	for _, shade := range shades {
		response.Shades = append(response.Shades, fromDomainShade(shade))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

func fromDomainShade(s *domain.ServiceShade) ShadeResponse {
	return ShadeResponse{ID: s.ID, Label: s.Label, Enabled: s.Enabled}
}

package get_services

import (
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
)

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

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogRepo.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := ServicesListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, service := range services {
		shades, err := h.catalogRepo.ListShades(r.Context(), service.ID, true)
		if err != nil {
			h.logger.Error("GET /services - Failed to list shades for service id=%d: %v", service.ID, err)
			handlers.RespondInternalError(w)
			return
		}
		response.Services = append(response.Services, FromDomainService(service, shades))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

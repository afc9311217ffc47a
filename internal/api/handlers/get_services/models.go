package get_services

import "github.com/johntint/booking-service/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	BasePrice   int64            `json:"basePrice"`
	PriceTable  map[string]int64 `json:"priceTable"`
	Shades      []string         `json:"shades"`
}

// ServicesListResponse HTTP response model
type ServicesListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует доменную услугу в HTTP response
func FromDomainService(s *domain.Service, shades []*domain.ServiceShade) ServiceResponse {
	labels := make([]string, 0, len(shades))
	for _, shade := range shades {
		labels = append(labels, shade.Label)
	}

	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		PriceTable:  s.PriceTable,
		Shades:      labels,
	}
}

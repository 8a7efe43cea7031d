package usecase

import (
	"github.com/bibbank/consolidation-service/internal/application/dto"
	"github.com/bibbank/consolidation-service/internal/domain/model"
)

// ListOffersUseCase exposes the read-only offer catalog.
type ListOffersUseCase struct {
	catalog model.Catalog
}

// NewListOffersUseCase wires the catalog.
func NewListOffersUseCase(catalog model.Catalog) *ListOffersUseCase {
	return &ListOffersUseCase{catalog: catalog}
}

// Execute returns the catalog contents in catalog order.
func (uc *ListOffersUseCase) Execute() dto.ListOffersResponse {
	offers := uc.catalog.Offers()
	resp := dto.ListOffersResponse{Offers: make([]dto.OfferResponse, 0, len(offers))}
	for _, o := range offers {
		resp.Offers = append(resp.Offers, dto.OfferResponse{
			ID:         o.ID,
			AnnualRate: o.AnnualRate,
			TermMonths: o.TermMonths,
			Priority:   o.Priority,
		})
	}
	return resp
}

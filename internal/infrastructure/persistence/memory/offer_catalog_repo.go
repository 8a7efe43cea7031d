package memory

import (
	"context"

	"github.com/bibbank/consolidation-service/internal/domain/model"
)

// OfferCatalogRepo serves a fixed catalog from memory. Used in tests and
// for local development without a database.
type OfferCatalogRepo struct {
	offers   []model.Offer
	scoreMin int
	scoreMax int
}

// NewOfferCatalogRepo creates an in-memory catalog source.
func NewOfferCatalogRepo(offers []model.Offer, scoreMin, scoreMax int) *OfferCatalogRepo {
	return &OfferCatalogRepo{offers: offers, scoreMin: scoreMin, scoreMax: scoreMax}
}

// LoadCatalog builds and validates the catalog.
func (r *OfferCatalogRepo) LoadCatalog(_ context.Context) (model.Catalog, error) {
	return model.NewCatalog(r.offers, r.scoreMin, r.scoreMax)
}

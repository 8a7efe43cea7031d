package port

import (
	"context"

	"github.com/bibbank/consolidation-service/internal/domain/event"
	"github.com/bibbank/consolidation-service/internal/domain/model"
)

// OfferCatalogRepository loads the static offer catalog. The catalog is
// loaded once at process start and shared read-only for the process
// lifetime; it is never reloaded per request.
type OfferCatalogRepository interface {
	LoadCatalog(ctx context.Context) (model.Catalog, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

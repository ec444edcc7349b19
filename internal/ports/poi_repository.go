package ports

import (
	"context"
	"heritage-itinerary-service/internal/domain"
)

// Port: a boundary for retrieving POI records from the catalog.
type PoiRepository interface {
	// Retrieve POIs by id, in the order given. An empty ids slice lists the whole catalog.
	ListPOIs(ctx context.Context, ids []string) ([]*domain.POI, error)
}

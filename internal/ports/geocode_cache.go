package ports

import (
	"context"
	"heritage-itinerary-service/internal/domain"
)

// Port: a key/value store of normalized geocode queries to coordinates.
type GeocodeCache interface {
	// Fetch cached coordinates; missing keys are absent from the result.
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	// Store query -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

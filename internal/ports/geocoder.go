package ports

import (
	"context"
	"heritage-itinerary-service/internal/domain"
)

// Contract for translating free text into coordinates.
type Geocoder interface {
	// Return coordinates for text scoped to regionHint.
	// found=false with a nil error is a normal business-level "no match".
	Geocode(ctx context.Context, text string, regionHint string) (coord domain.Coordinates, found bool, err error)
}

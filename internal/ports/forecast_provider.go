package ports

import (
	"context"
	"heritage-itinerary-service/internal/domain"
)

// Contract for the weather collaborator.
type ForecastProvider interface {
	// Return up to days daily forecasts for coord, index 0 = today.
	Forecast(ctx context.Context, coord domain.Coordinates, days int) ([]domain.DayForecast, error)
}

package services

import "heritage-itinerary-service/internal/domain"

// AnnotateWeather attaches forecast[d-1] to day d. Days beyond the forecast
// keep a nil Weather. Values are carried over as given; only the temperature
// range is formatted.
func AnnotateWeather(days []domain.DayPlan, forecast []domain.DayForecast) []domain.DayPlan {
	out := make([]domain.DayPlan, len(days))
	copy(out, days)

	for i := range out {
		idx := out[i].Day - 1
		if idx < 0 || idx >= len(forecast) {
			out[i].Weather = nil
			continue
		}
		f := forecast[idx]
		out[i].Weather = &domain.WeatherNote{
			Condition:     f.Condition,
			Temperature:   f.TemperatureBand(),
			Suitability:   f.Suitability,
			Precipitation: f.Precipitation,
		}
	}

	return out
}

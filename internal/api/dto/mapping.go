package dto

import (
	"heritage-itinerary-service/internal/domain"
	"math"
	"strings"
)

// ToDomain converts an inline request POI. Coordinates are kept only as a pair.
func (p POIRequest) ToDomain() *domain.POI {
	poi := &domain.POI{
		ID:       strings.TrimSpace(p.ID),
		Name:     strings.TrimSpace(p.Name),
		Category: strings.TrimSpace(p.Category),
		Region:   strings.TrimSpace(p.Region),
		Address:  strings.TrimSpace(p.Address),
	}
	if p.Lat != nil && p.Lon != nil {
		poi.Coord = &domain.Coordinates{Lat: *p.Lat, Lon: *p.Lon}
	}
	if p.VisitDurationHours != nil {
		h := *p.VisitDurationHours
		poi.VisitDurationHours = &h
	}
	return poi
}

func (f ForecastDayRequest) ToDomain() domain.DayForecast {
	return domain.DayForecast{
		Condition:     f.Condition,
		MinTemp:       f.MinTemp,
		MaxTemp:       f.MaxTemp,
		Suitability:   f.Suitability,
		Precipitation: f.Precipitation,
	}
}

func NewPOIResponse(p *domain.POI) POIResponse {
	res := POIResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Category:           p.Category,
		Region:             p.Region,
		Address:            p.Address,
		VisitDurationHours: p.VisitDurationHours,
	}
	if p.Coord != nil {
		lat, lon := p.Coord.Lat, p.Coord.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}

func NewItineraryResponse(it *domain.Itinerary) ItineraryResponse {
	res := ItineraryResponse{
		PlanID:         it.PlanID,
		DailyItinerary: make([]DayResponse, 0, len(it.Days)),
		RoutingNotes:   append([]string{}, it.Routing.Notes...),
		UnroutablePOIs: append([]string{}, it.UnroutablePOIs...),
		Routing: RoutingResponse{
			HopCount:         it.Routing.HopCount,
			TotalDistanceKm:  round2(it.Routing.TotalDistanceKm),
			TotalTravelHours: round2(it.Routing.TotalTravelHours),
			FallbackRouting:  it.Routing.FallbackRouting,
			OriginTier:       string(it.Routing.OriginTier),
			OriginLat:        it.Routing.Origin.Lat,
			OriginLon:        it.Routing.Origin.Lon,
		},
	}

	for _, d := range it.Days {
		day := DayResponse{
			Day:         d.Day,
			Theme:       d.Theme,
			PaceLabel:   string(d.Pace),
			Items:       make([]ItineraryItemResponse, 0, len(d.Items)),
			VisitHours:  round2(d.VisitHours),
			TravelHours: round2(d.TravelHours),
		}
		if d.Weather != nil {
			day.Weather = &WeatherResponse{
				Condition:     d.Weather.Condition,
				Temperature:   d.Weather.Temperature,
				Suitability:   d.Weather.Suitability,
				Precipitation: d.Weather.Precipitation,
			}
		}
		for _, p := range d.Items {
			day.Items = append(day.Items, ItineraryItemResponse{
				POIResponse:      NewPOIResponse(p),
				DistanceFromPrev: round2(p.DistanceFromPrevKm),
				TravelTimeHours:  round2(p.TravelTimeHours),
			})
		}
		res.DailyItinerary = append(res.DailyItinerary, day)
	}

	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

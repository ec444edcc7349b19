package services

import "heritage-itinerary-service/internal/domain"

// DefaultTravelSpeedKmh converts hop distance into travel time when no speed is configured.
const DefaultTravelSpeedKmh = 90.0

// SequenceTour orders POIs using a greedy nearest-neighbor walk from start.
//
// Each step picks the closest unvisited POI by great-circle distance. It does
// not attempt global route optimization. Ties go to the POI that appears
// earlier in the input, so the same input always produces the same tour.
//
// Every POI must carry valid coordinates. The returned POIs are clones with
// DistanceFromPrevKm and TravelTimeHours populated; the input is not modified.
func SequenceTour(start domain.Coordinates, pois []*domain.POI, speedKmh float64) []*domain.POI {
	if speedKmh <= 0 {
		speedKmh = DefaultTravelSpeedKmh
	}
	if len(pois) == 0 {
		return []*domain.POI{}
	}

	remaining := make([]*domain.POI, len(pois))
	copy(remaining, pois)

	tour := make([]*domain.POI, 0, len(pois))
	current := start

	for len(remaining) > 0 {
		best := -1
		bestKm := 0.0

		for i, p := range remaining {
			km := domain.HaversineKm(current, *p.Coord)
			// Strict comparison keeps the earliest candidate on ties.
			if best == -1 || km < bestKm {
				best = i
				bestKm = km
			}
		}

		next := remaining[best].Clone()
		next.DistanceFromPrevKm = bestKm
		next.TravelTimeHours = bestKm / speedKmh
		tour = append(tour, next)

		current = *next.Coord
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return tour
}

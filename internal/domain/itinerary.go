package domain

// Qualitative intensity label for one day, derived from its POI count.
type Pace string

const (
	PaceLeisurely   Pace = "leisurely"
	PaceComfortable Pace = "comfortable"
	PaceIntense     Pace = "intense"
	PaceOverloaded  Pace = "overloaded"
)

// A planning request as seen by the engine.
type TripRequest struct {
	Origin   string
	DayCount int
	POIs     []*POI
	Forecast []DayForecast

	// Fetch a forecast for the origin when Forecast is empty.
	FetchForecast bool
}

// The subset of the ordered tour assigned to one day of the trip.
type DayPlan struct {
	Day         int
	Theme       string
	Pace        Pace
	Weather     *WeatherNote
	Items       []*POI
	VisitHours  float64
	TravelHours float64
}

// Routing metadata describing how the tour was built.
type RoutingMeta struct {
	HopCount         int
	TotalDistanceKm  float64
	TotalTravelHours float64
	FallbackRouting  bool
	Origin           Coordinates
	OriginTier       ResolutionTier
	Notes            []string
}

// Itinerary is the assembled, immutable result of one planning request.
type Itinerary struct {
	PlanID         string
	Days           []DayPlan
	Routing        RoutingMeta
	UnroutablePOIs []string
}

// ItemCount returns the number of POIs placed across all days.
func (it *Itinerary) ItemCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Items)
	}
	return n
}

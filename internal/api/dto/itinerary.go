package dto

type ForecastDayRequest struct {
	Condition     string  `json:"condition" validate:"max=50"`
	MinTemp       float64 `json:"min_temp" validate:"gte=-80,lte=70"`
	MaxTemp       float64 `json:"max_temp" validate:"gte=-80,lte=70,gtefield=MinTemp"`
	Suitability   string  `json:"suitability" validate:"max=50"`
	Precipitation float64 `json:"precipitation" validate:"gte=0"`
}

type ItineraryRequest struct {
	Origin        string               `json:"origin" validate:"max=100"`
	DayCount      int                  `json:"day_count" validate:"lte=30"`
	POIs          []POIRequest         `json:"pois" validate:"max=200,dive"`
	POIIDs        []string             `json:"poi_ids" validate:"max=200,dive,required,max=64"`
	Forecast      []ForecastDayRequest `json:"forecast" validate:"max=30,dive"`
	FetchForecast bool                 `json:"fetch_forecast"`
}

type WeatherResponse struct {
	Condition     string  `json:"condition"`
	Temperature   string  `json:"temperature"`
	Suitability   string  `json:"suitability"`
	Precipitation float64 `json:"precipitation"`
}

type ItineraryItemResponse struct {
	POIResponse
	DistanceFromPrev float64 `json:"distance_from_prev"`
	TravelTimeHours  float64 `json:"travel_time_hours"`
}

type DayResponse struct {
	Day         int                     `json:"day"`
	Theme       string                  `json:"theme"`
	PaceLabel   string                  `json:"pace_label"`
	Weather     *WeatherResponse        `json:"weather"`
	Items       []ItineraryItemResponse `json:"items"`
	VisitHours  float64                 `json:"visit_hours"`
	TravelHours float64                 `json:"travel_hours"`
}

type RoutingResponse struct {
	HopCount         int     `json:"hop_count"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalTravelHours float64 `json:"total_travel_hours"`
	FallbackRouting  bool    `json:"fallback_routing"`
	OriginTier       string  `json:"origin_tier"`
	OriginLat        float64 `json:"origin_lat"`
	OriginLon        float64 `json:"origin_lon"`
}

type ItineraryResponse struct {
	PlanID         string          `json:"plan_id"`
	DailyItinerary []DayResponse   `json:"daily_itinerary"`
	RoutingNotes   []string        `json:"routing_notes"`
	UnroutablePOIs []string        `json:"unroutable_pois"`
	Routing        RoutingResponse `json:"routing"`
}

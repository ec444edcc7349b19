package domain

import "fmt"

// One day of a forecast supplied by the weather collaborator.
// Index 0 of a forecast slice is day 1 of the trip.
type DayForecast struct {
	Condition     string
	MinTemp       float64
	MaxTemp       float64
	Suitability   string
	Precipitation float64
}

// Day-level weather summary attached to a DayPlan.
type WeatherNote struct {
	Condition     string
	Temperature   string
	Suitability   string
	Precipitation float64
}

// TemperatureBand formats the forecast range as "<min>-<max>°C".
func (f DayForecast) TemperatureBand() string {
	return fmt.Sprintf("%g-%g°C", f.MinTemp, f.MaxTemp)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOIVisitHours(t *testing.T) {
	p := &POI{ID: "1", Name: "华县皮影"}
	assert.Equal(t, DefaultVisitHours, p.VisitHours())

	zero := 0.0
	p.VisitDurationHours = &zero
	assert.Equal(t, DefaultVisitHours, p.VisitHours())

	h := 3.5
	p.VisitDurationHours = &h
	assert.Equal(t, 3.5, p.VisitHours())
}

func TestPOICloneDoesNotAlias(t *testing.T) {
	h := 1.5
	orig := &POI{ID: "1", Coord: &Coordinates{Lat: 34.1, Lon: 108.2}, VisitDurationHours: &h}

	c := orig.Clone()
	require.NotSame(t, orig.Coord, c.Coord)
	require.NotSame(t, orig.VisitDurationHours, c.VisitDurationHours)

	c.Coord.Lat = 1
	c.DistanceFromPrevKm = 42
	assert.Equal(t, 34.1, orig.Coord.Lat)
	assert.Zero(t, orig.DistanceFromPrevKm)
}

func TestDayForecastTemperatureBand(t *testing.T) {
	f := DayForecast{MinTemp: 5, MaxTemp: 15.5}
	assert.Equal(t, "5-15.5°C", f.TemperatureBand())
}

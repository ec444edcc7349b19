package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"heritage-itinerary-service/internal/adapters/geocode"
	"heritage-itinerary-service/internal/api/dto"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/services"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingForecasts struct {
	calls atomic.Int32
	coord domain.Coordinates
}

func (f *countingForecasts) Forecast(_ context.Context, coord domain.Coordinates, days int) ([]domain.DayForecast, error) {
	f.calls.Add(1)
	f.coord = coord
	out := make([]domain.DayForecast, days)
	for i := range out {
		out[i] = domain.DayForecast{Condition: "晴朗", MinTemp: 10, MaxTemp: 20, Suitability: "适宜"}
	}
	return out, nil
}

func newItineraryHandler(gc *geocode.MockGeocoder, forecasts *countingForecasts) *ItineraryHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := services.NewCoordinateResolver(gc, logger)
	opts := services.PlannerOptions{}
	if forecasts != nil {
		opts.Forecasts = forecasts
	}
	return &ItineraryHandler{Planner: services.NewPlanner(resolver, opts, logger, nil)}
}

func postItinerary(t *testing.T, h *ItineraryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/itineraries", bytes.NewBufferString(body)))
	return rec
}

func countCalls(calls []string, query string) int {
	n := 0
	for _, c := range calls {
		if c == query {
			n++
		}
	}
	return n
}

func TestCreateFetchForecastResolvesOriginOnce(t *testing.T) {
	gc := geocode.NewMockGeocoder([]geocode.MockPlace{{Query: "宝鸡古镇", Lat: 34.36, Lon: 107.24}})
	forecasts := &countingForecasts{}
	h := newItineraryHandler(gc, forecasts)

	rec := postItinerary(t, h, `{
		"origin": "宝鸡古镇",
		"day_count": 2,
		"fetch_forecast": true,
		"pois": [{"id": "p1", "name": "凤翔泥塑", "lat": 34.5214, "lon": 107.4003}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, 1, countCalls(gc.Calls(), "宝鸡古镇"))
	assert.EqualValues(t, 1, forecasts.calls.Load())
	assert.Equal(t, domain.Coordinates{Lat: 34.36, Lon: 107.24}, forecasts.coord)

	var res dto.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "remote", res.Routing.OriginTier)
	require.Len(t, res.DailyItinerary, 2)
	for _, d := range res.DailyItinerary {
		require.NotNil(t, d.Weather)
		assert.Equal(t, "10-20°C", d.Weather.Temperature)
	}
}

func TestCreateEmptyOriginIsNotGeocoded(t *testing.T) {
	gc := geocode.NewMockGeocoder(nil)
	h := newItineraryHandler(gc, nil)

	rec := postItinerary(t, h, `{"day_count": 1, "pois": [{"id": "p1", "name": "秦腔", "lat": 34.2665, "lon": 108.9486}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "default", res.Routing.OriginTier)
	assert.Empty(t, gc.Calls())
}

func TestCreateCatalogIDsWithoutRepo(t *testing.T) {
	h := newItineraryHandler(geocode.NewMockGeocoder(nil), nil)

	rec := postItinerary(t, h, `{"poi_ids": ["c1"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog unavailable")
}

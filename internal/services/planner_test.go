package services

import (
	"context"
	"errors"
	"heritage-itinerary-service/internal/adapters/geocode"
	"heritage-itinerary-service/internal/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(gc *geocode.MockGeocoder) *Planner {
	var r *CoordinateResolver
	if gc != nil {
		r = NewCoordinateResolver(gc, quietLogger())
	} else {
		r = NewCoordinateResolver(nil, quietLogger())
	}
	return NewPlanner(r, PlannerOptions{}, quietLogger(), nil)
}

// Five sites within 50km of Xi'an.
func xianCluster() []*domain.POI {
	return []*domain.POI{
		{ID: "1", Name: "大雁塔", Region: "西安", Category: "古建筑", Coord: &domain.Coordinates{Lat: 34.2192, Lon: 108.9642}},
		{ID: "2", Name: "兵马俑", Region: "临潼", Category: "古遗址", Coord: &domain.Coordinates{Lat: 34.3853, Lon: 109.2785}},
		{ID: "3", Name: "咸阳博物院", Region: "咸阳", Category: "博物馆", Coord: &domain.Coordinates{Lat: 34.3310, Lon: 108.7093}},
		{ID: "4", Name: "西安碑林", Region: "西安", Category: "博物馆", Coord: &domain.Coordinates{Lat: 34.2578, Lon: 108.9533}},
		{ID: "5", Name: "汉阳陵", Region: "咸阳", Category: "古墓葬", Coord: &domain.Coordinates{Lat: 34.4440, Lon: 108.9390}},
	}
}

func allItems(it *domain.Itinerary) []string {
	var out []string
	for _, d := range it.Days {
		out = append(out, ids(d.Items)...)
	}
	return out
}

func TestPlanFivePOIsOverThreeDays(t *testing.T) {
	p := newTestPlanner(nil)

	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 3, POIs: xianCluster()})
	require.NoError(t, err)

	require.Len(t, it.Days, 3)
	assert.Equal(t, []int{2, 1, 2}, bucketSizes(it.Days))
	for i, d := range it.Days {
		assert.Equal(t, i+1, d.Day)
		assert.NotEmpty(t, d.Items)
		assert.Nil(t, d.Weather)
		assert.NotEqual(t, FreeExplorationTheme, d.Theme)
	}
	assert.Equal(t, domain.PaceComfortable, it.Days[0].Pace)
	assert.Equal(t, domain.PaceLeisurely, it.Days[1].Pace)
	assert.Equal(t, domain.PaceComfortable, it.Days[2].Pace)

	assert.False(t, it.Routing.FallbackRouting)
	assert.Equal(t, domain.TierTable, it.Routing.OriginTier)
	assert.Equal(t, 5, it.Routing.HopCount)
	assert.Contains(t, it.Routing.Notes, NoteProximity)
	assert.Empty(t, it.UnroutablePOIs)
	assert.Greater(t, it.Routing.TotalDistanceKm, 0.0)

	_, err = uuid.Parse(it.PlanID)
	assert.NoError(t, err)

	// First stop is the site nearest the origin.
	assert.Equal(t, "4", it.Days[0].Items[0].ID)
}

func TestPlanTwoPOIsOverFiveDays(t *testing.T) {
	p := newTestPlanner(nil)

	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 5, POIs: xianCluster()[:2]})
	require.NoError(t, err)

	require.Len(t, it.Days, 5)
	assert.Equal(t, []int{1, 1, 0, 0, 0}, bucketSizes(it.Days))
	assert.Equal(t, domain.PaceLeisurely, it.Days[0].Pace)
	assert.Equal(t, domain.PaceLeisurely, it.Days[1].Pace)
	for _, d := range it.Days[2:] {
		assert.Equal(t, FreeExplorationTheme, d.Theme)
		assert.Equal(t, domain.PaceLeisurely, d.Pace)
	}
}

func TestPlanReportsUnroutablePOIs(t *testing.T) {
	gc := geocode.NewMockGeocoder([]geocode.MockPlace{{Query: "华县 皮影戏", Lat: 34.5116, Lon: 109.7718}})
	p := newTestPlanner(gc)

	pois := append(xianCluster()[:2],
		&domain.POI{ID: "6", Name: "皮影戏", Region: "华县"},
		&domain.POI{ID: "7", Name: "无名遗址"},
	)

	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 2, POIs: pois})
	require.NoError(t, err)

	assert.Equal(t, []string{"7"}, it.UnroutablePOIs)
	assert.Contains(t, it.Routing.Notes, "1 POI(s) could not be located and were left out of the route")
	assert.ElementsMatch(t, []string{"1", "2", "6"}, allItems(it))
	assert.Equal(t, len(pois), it.ItemCount()+len(it.UnroutablePOIs))

	// The caller's POIs are not modified.
	assert.Nil(t, pois[2].Coord)
	assert.Zero(t, pois[0].DistanceFromPrevKm)
}

func TestPlanUnroutableListsIDsNotNames(t *testing.T) {
	p := newTestPlanner(geocode.NewMockGeocoder(nil))

	pois := append(xianCluster()[:1], &domain.POI{ID: "poi-42", Name: "无名遗址"})
	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 1, POIs: pois})
	require.NoError(t, err)

	assert.Equal(t, []string{"poi-42"}, it.UnroutablePOIs)
	assert.Equal(t, []string{"1"}, allItems(it))
}

func TestPlanFallbackWhenNothingRoutable(t *testing.T) {
	p := newTestPlanner(geocode.NewMockGeocoder(nil))

	pois := []*domain.POI{
		{ID: "a", Name: "甲遗址"},
		{ID: "b", Name: "乙遗址"},
		{ID: "c", Name: "丙遗址"},
	}

	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 2, POIs: pois})
	require.NoError(t, err)

	assert.True(t, it.Routing.FallbackRouting)
	assert.Equal(t, []string{"a", "b", "c"}, allItems(it))
	assert.Empty(t, it.UnroutablePOIs)
	assert.Zero(t, it.Routing.HopCount)
	assert.Contains(t, it.Routing.Notes, "unresolved POIs: 甲遗址、乙遗址、丙遗址")
	assert.Len(t, it.Days, 2)
}

func TestPlanNoPOIs(t *testing.T) {
	it, err := newTestPlanner(nil).Plan(context.Background(), domain.TripRequest{Origin: "西安", DayCount: 3})
	require.NoError(t, err)

	require.Len(t, it.Days, 3)
	for _, d := range it.Days {
		assert.Empty(t, d.Items)
		assert.Equal(t, FreeExplorationTheme, d.Theme)
	}
	assert.False(t, it.Routing.FallbackRouting)
}

func TestPlanClampsDayCount(t *testing.T) {
	it, err := newTestPlanner(nil).Plan(context.Background(), domain.TripRequest{DayCount: 0, POIs: xianCluster()})
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	assert.Equal(t, 5, len(it.Days[0].Items))
	assert.Equal(t, domain.PaceOverloaded, it.Days[0].Pace)
}

func TestPlanWeatherAlignment(t *testing.T) {
	forecast := []domain.DayForecast{
		{Condition: "晴朗", MinTemp: 10, MaxTemp: 20, Suitability: "非常适宜"},
		{Condition: "中雨", MinTemp: 8, MaxTemp: 12, Suitability: "一般", Precipitation: 12},
	}

	it, err := newTestPlanner(nil).Plan(context.Background(), domain.TripRequest{
		Origin: "西安", DayCount: 3, POIs: xianCluster(), Forecast: forecast,
	})
	require.NoError(t, err)

	require.NotNil(t, it.Days[0].Weather)
	assert.Equal(t, "10-20°C", it.Days[0].Weather.Temperature)
	require.NotNil(t, it.Days[1].Weather)
	assert.Equal(t, "一般", it.Days[1].Weather.Suitability)
	assert.Nil(t, it.Days[2].Weather)
}

func TestPlanDeterministic(t *testing.T) {
	p := newTestPlanner(nil)
	req := domain.TripRequest{Origin: "咸阳", DayCount: 2, POIs: xianCluster()}

	first, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Plan(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, allItems(first), allItems(second))
	assert.Equal(t, bucketSizes(first.Days), bucketSizes(second.Days))
	assert.NotEqual(t, first.PlanID, second.PlanID)
}

func TestPlanUnknownOriginUsesDefault(t *testing.T) {
	it, err := newTestPlanner(nil).Plan(context.Background(), domain.TripRequest{Origin: "火星", DayCount: 1, POIs: xianCluster()})
	require.NoError(t, err)

	assert.Equal(t, domain.TierDefault, it.Routing.OriginTier)
	assert.Equal(t, DefaultOrigin, it.Routing.Origin)
	assert.Len(t, it.Routing.Notes, 2)
}

func TestPlanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPlanner(nil).Plan(ctx, domain.TripRequest{Origin: "西安", DayCount: 2, POIs: xianCluster()})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

type stubForecasts struct {
	forecast []domain.DayForecast
	err      error

	calls int
	coord domain.Coordinates
	days  int
}

func (s *stubForecasts) Forecast(_ context.Context, coord domain.Coordinates, days int) ([]domain.DayForecast, error) {
	s.calls++
	s.coord = coord
	s.days = days
	return s.forecast, s.err
}

func TestPlanEmptyOriginUsesRegionalDefault(t *testing.T) {
	gc := geocode.NewMockGeocoder([]geocode.MockPlace{{Query: "西安", Lat: 34.27, Lon: 108.95}})
	p := newTestPlanner(gc)

	it, err := p.Plan(context.Background(), domain.TripRequest{Origin: "  ", DayCount: 2, POIs: xianCluster()})
	require.NoError(t, err)

	assert.Equal(t, domain.TierDefault, it.Routing.OriginTier)
	assert.Equal(t, DefaultOrigin, it.Routing.Origin)
	assert.Empty(t, gc.Calls(), "an empty origin is never geocoded")
	assert.Contains(t, it.Routing.Notes, "no origin given; route starts from the regional default")
	assert.Equal(t, 5, it.ItemCount())
}

func TestPlanFetchesForecastForResolvedOrigin(t *testing.T) {
	gc := geocode.NewMockGeocoder([]geocode.MockPlace{{Query: "宝鸡古镇", Lat: 34.36, Lon: 107.24}})
	forecasts := &stubForecasts{forecast: []domain.DayForecast{
		{Condition: "晴朗", MinTemp: 12, MaxTemp: 24, Suitability: "非常适宜"},
	}}
	r := NewCoordinateResolver(gc, quietLogger())
	p := NewPlanner(r, PlannerOptions{Forecasts: forecasts}, quietLogger(), nil)

	it, err := p.Plan(context.Background(), domain.TripRequest{
		Origin: "宝鸡古镇", DayCount: 2, POIs: xianCluster(), FetchForecast: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"宝鸡古镇"}, gc.Calls(), "origin resolved exactly once")
	assert.Equal(t, 1, forecasts.calls)
	assert.Equal(t, domain.Coordinates{Lat: 34.36, Lon: 107.24}, forecasts.coord)
	assert.Equal(t, 2, forecasts.days)

	require.NotNil(t, it.Days[0].Weather)
	assert.Equal(t, "晴朗", it.Days[0].Weather.Condition)
	assert.Nil(t, it.Days[1].Weather)
}

func TestPlanInlineForecastSkipsFetch(t *testing.T) {
	forecasts := &stubForecasts{}
	p := NewPlanner(nil, PlannerOptions{Forecasts: forecasts}, quietLogger(), nil)

	it, err := p.Plan(context.Background(), domain.TripRequest{
		Origin:        "西安",
		DayCount:      1,
		POIs:          xianCluster()[:1],
		Forecast:      []domain.DayForecast{{Condition: "多云", MinTemp: 5, MaxTemp: 9}},
		FetchForecast: true,
	})
	require.NoError(t, err)

	assert.Zero(t, forecasts.calls)
	require.NotNil(t, it.Days[0].Weather)
	assert.Equal(t, "多云", it.Days[0].Weather.Condition)
}

func TestPlanForecastFailureDropsWeather(t *testing.T) {
	forecasts := &stubForecasts{err: errors.New("upstream unavailable")}
	p := NewPlanner(nil, PlannerOptions{Forecasts: forecasts}, quietLogger(), nil)

	it, err := p.Plan(context.Background(), domain.TripRequest{
		Origin: "西安", DayCount: 1, POIs: xianCluster()[:1], FetchForecast: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, forecasts.calls)
	assert.Nil(t, it.Days[0].Weather)
	assert.Contains(t, it.Routing.Notes, "weather forecast unavailable")
}

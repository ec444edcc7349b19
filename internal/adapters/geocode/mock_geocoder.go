package geocode

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"sync"
)

type MockPlace struct {
	Query string
	Lat   float64
	Lon   float64
}

// MockGeocoder answers from a fixed table of queries. Unknown queries are a
// miss, and queries listed in Fail return Err. It records every call.
type MockGeocoder struct {
	m    map[string]domain.Coordinates
	Fail map[string]struct{}
	Err  error

	mu    sync.Mutex
	calls []string
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(places))
	for _, p := range places {
		m[p.Query] = domain.Coordinates{Lat: p.Lat, Lon: p.Lon}
	}
	return &MockGeocoder{m: m, Fail: map[string]struct{}{}}
}

func (g *MockGeocoder) Geocode(ctx context.Context, text, regionHint string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	g.calls = append(g.calls, text)
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, false, err
	}
	if _, ok := g.Fail[text]; ok {
		return domain.Coordinates{}, false, g.Err
	}
	c, ok := g.m[text]
	return c, ok, nil
}

// Calls returns the queries received so far, in arrival order.
func (g *MockGeocoder) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

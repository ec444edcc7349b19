package cache

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryGeocodeCache is the in-process front layer of the geocode cache chain.
type MemoryGeocodeCache struct {
	c *gocache.Cache
}

func NewMemoryGeocodeCache(ttl time.Duration) *MemoryGeocodeCache {
	return &MemoryGeocodeCache{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryGeocodeCache) GetMany(_ context.Context, queries []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(queries))
	for _, q := range uniqueKeys(queries) {
		if v, ok := m.c.Get(q); ok {
			if c, ok := v.(domain.Coordinates); ok {
				out[q] = c
			}
		}
	}
	return out, nil
}

func (m *MemoryGeocodeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	for q, c := range results {
		m.c.SetDefault(q, c)
	}
	return nil
}

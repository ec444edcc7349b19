package geocode

import (
	"context"
	"errors"
	"heritage-itinerary-service/internal/adapters/cache"
	"heritage-itinerary-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{}

func (failingCache) GetMany(context.Context, []string) (map[string]domain.Coordinates, error) {
	return nil, errors.New("cache down")
}

func (failingCache) PutMany(context.Context, map[string]domain.Coordinates) error {
	return errors.New("cache down")
}

func TestCachedGeocoderReadsThroughAndWritesBack(t *testing.T) {
	inner := NewMockGeocoder([]MockPlace{{Query: "汉中", Lat: 33.0676, Lon: 107.0238}})
	front := cache.NewMemoryGeocodeCache(time.Minute)
	back := cache.NewMemoryGeocodeCache(time.Minute)
	g := NewCachedGeocoder(inner, nil, front, back)

	ctx := context.Background()

	c, found, err := g.Geocode(ctx, "汉中", "陕西省")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 33.0676, c.Lat, 1e-9)

	key := CacheKey("汉中", "陕西省")
	for _, layer := range []*cache.MemoryGeocodeCache{front, back} {
		hits, err := layer.GetMany(ctx, []string{key})
		require.NoError(t, err)
		assert.Contains(t, hits, key)
	}

	_, found, err = g.Geocode(ctx, "汉中", "陕西省")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, inner.Calls(), 1, "second lookup should be served from cache")
}

func TestCachedGeocoderBackfillsFasterLayers(t *testing.T) {
	ctx := context.Background()
	inner := NewMockGeocoder(nil)
	front := cache.NewMemoryGeocodeCache(time.Minute)
	back := cache.NewMemoryGeocodeCache(time.Minute)

	key := CacheKey("安康", "陕西省")
	require.NoError(t, back.PutMany(ctx, map[string]domain.Coordinates{key: {Lat: 32.6903, Lon: 109.0293}}))

	g := NewCachedGeocoder(inner, nil, front, back)
	_, found, err := g.Geocode(ctx, "安康", "陕西省")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, inner.Calls())

	hits, err := front.GetMany(ctx, []string{key})
	require.NoError(t, err)
	assert.Contains(t, hits, key)
}

func TestCachedGeocoderIgnoresCacheFailures(t *testing.T) {
	inner := NewMockGeocoder([]MockPlace{{Query: "宝鸡", Lat: 34.3619, Lon: 107.2373}})
	g := NewCachedGeocoder(inner, nil, failingCache{})

	_, found, err := g.Geocode(context.Background(), "宝鸡", "陕西省")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCachedGeocoderDoesNotCacheMisses(t *testing.T) {
	inner := NewMockGeocoder(nil)
	mem := cache.NewMemoryGeocodeCache(time.Minute)
	g := NewCachedGeocoder(inner, nil, mem)

	for i := 0; i < 2; i++ {
		_, found, err := g.Geocode(context.Background(), "无名村", "陕西省")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.Len(t, inner.Calls(), 2)
}

func TestCachedGeocoderPropagatesInnerErrors(t *testing.T) {
	inner := NewMockGeocoder(nil)
	inner.Fail["延安"] = struct{}{}
	inner.Err = errors.New("upstream down")

	g := NewCachedGeocoder(inner, nil, cache.NewMemoryGeocodeCache(time.Minute))
	_, found, err := g.Geocode(context.Background(), "延安", "陕西省")
	assert.Error(t, err)
	assert.False(t, found)
}

package cache

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"陕西省|商洛": {Lat: 33.8704, Lon: 109.9404},
	}))

	raw, err := mr.Get("geocode:陕西省|商洛")
	require.NoError(t, err)
	assert.Equal(t, "33.8704,109.9404", raw)
	assert.Equal(t, time.Hour, mr.TTL("geocode:陕西省|商洛"))

	got, err := c.GetMany(ctx, []string{"陕西省|商洛", "陕西省|渭南"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 109.9404, got["陕西省|商洛"].Lon, 1e-9)
}

func TestRedisGeocodeCacheExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"k": {Lat: 34, Lon: 108}}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"k"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisGeocodeCacheMalformedValue(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("geocode:bad", "not-a-coordinate"))

	_, err := NewRedisGeocodeCache(client, time.Minute).GetMany(context.Background(), []string{"bad"})
	assert.Error(t, err)
}

func TestRedisGeocodeCacheUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	_, err := NewRedisGeocodeCache(client, time.Minute).GetMany(context.Background(), []string{"k"})
	assert.Error(t, err)
}

package cache

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGeocodeCache(t *testing.T) {
	c := NewMemoryGeocodeCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"a": {Lat: 34, Lon: 108}}))

	got, err := c.GetMany(ctx, []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{"a": {Lat: 34, Lon: 108}}, got)
}

package geocode

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/ports"
	"log/slog"
)

// CachedGeocoder is a read-through decorator over a chain of caches.
//
// Caches are consulted in order (fastest first). A hit in a later cache is
// copied into the earlier ones; a remote hit is written to all of them.
// Misses are not cached so a place can be found once the remote learns it.
// Cache failures are logged and never fail the lookup.
type CachedGeocoder struct {
	inner  ports.Geocoder
	caches []ports.GeocodeCache
	logger *slog.Logger
}

func NewCachedGeocoder(inner ports.Geocoder, logger *slog.Logger, caches ...ports.GeocodeCache) *CachedGeocoder {
	if logger == nil {
		logger = slog.Default()
	}
	kept := make([]ports.GeocodeCache, 0, len(caches))
	for _, c := range caches {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &CachedGeocoder{inner: inner, caches: kept, logger: logger}
}

// CacheKey scopes a query by its region hint.
func CacheKey(text, regionHint string) string {
	return normalize(regionHint) + "|" + normalize(text)
}

func (g *CachedGeocoder) Geocode(ctx context.Context, text, regionHint string) (domain.Coordinates, bool, error) {
	if normalize(text) == "" {
		return domain.Coordinates{}, false, nil
	}
	key := CacheKey(text, regionHint)

	for i, c := range g.caches {
		hits, err := c.GetMany(ctx, []string{key})
		if err != nil {
			g.logger.WarnContext(ctx, "geocode cache read failed", slog.Int("layer", i), slog.Any("error", err))
			continue
		}
		coord, ok := hits[key]
		if !ok {
			continue
		}
		g.store(ctx, g.caches[:i], key, coord)
		return coord, true, nil
	}

	coord, found, err := g.inner.Geocode(ctx, text, regionHint)
	if err != nil || !found {
		return coord, found, err
	}

	g.store(ctx, g.caches, key, coord)
	return coord, true, nil
}

func (g *CachedGeocoder) store(ctx context.Context, layers []ports.GeocodeCache, key string, coord domain.Coordinates) {
	for i, c := range layers {
		if err := c.PutMany(ctx, map[string]domain.Coordinates{key: coord}); err != nil {
			g.logger.WarnContext(ctx, "geocode cache write failed", slog.Int("layer", i), slog.Any("error", err))
		}
	}
}

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache mapping geocode queries to coordinates.
// Query keys are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given query keys.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, k := range uniq {
		ph[i] = "?"
		args[i] = k
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		query,
		lat,
		lon
	FROM geocode_cache
	WHERE query IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store query -> coordinate mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	return putCoordinates(ctx, s.DB, `
	INSERT OR REPLACE INTO geocode_cache (
		query,
		lat,
		lon
	)
	VALUES (?, ?, ?);
	`, results)
}

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

// SQLGeocodeCache is a Postgres-backed cache mapping geocode queries to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given query keys.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT query, lat, lon
	FROM geocode_cache
	WHERE query = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store query -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.sql.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	return putCoordinates(ctx, s.DB, `
	INSERT INTO geocode_cache (query, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`, results)
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

func scanCoordinates(rows *sql.Rows, sizeHint int) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, sizeHint)
	for rows.Next() {
		var key string
		var lat, lon float64
		if err := rows.Scan(&key, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[key] = domain.Coordinates{Lat: lat, Lon: lon}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}

func putCoordinates(ctx context.Context, db *sql.DB, upsert string, results map[string]domain.Coordinates) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, c := range results {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert geocode cache: empty query key")
		}
		if !c.Valid() {
			return fmt.Errorf("insert geocode cache query=%q: invalid coordinate", key)
		}

		if _, err := stmt.ExecContext(ctx, key, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

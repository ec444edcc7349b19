package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/platform/db"
	"os"
	"strings"
)

// InitSchema creates the catalog and geocode cache tables for the given driver.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	realType := "DOUBLE PRECISION"
	if driver == db.DriverSQLite {
		realType = "REAL"
	}

	createPOIsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS pois (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat %[1]s,
		lon %[1]s,
		visit_duration_hours %[1]s
	);
	`, realType)

	createGeocodeCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		lat %[1]s NOT NULL,
		lon %[1]s NOT NULL
	);
	`, realType)

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_region
	ON pois(region);
	`

	statements := []string{
		createPOIsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type POISeed struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Region             string   `json:"region"`
	Address            string   `json:"address"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	VisitDurationHours *float64 `json:"visit_duration_hours"`
}

// SeedFromJSON upserts catalog POIs from a JSON file.
func SeedFromJSON(ctx context.Context, conn *sql.DB, driver, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", jsonPath, err)
	}

	var data []POISeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed pois: parse json: %w", err)
	}

	return SeedPOIs(ctx, conn, driver, data)
}

// SeedPOIs validates and upserts seed rows in one transaction.
func SeedPOIs(ctx context.Context, conn *sql.DB, driver string, data []POISeed) error {
	if conn == nil {
		return errors.New("seed pois: DB is nil")
	}

	rows := make([]POISeed, 0, len(data))
	for i, item := range data {
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		if item.ID == "" {
			return fmt.Errorf("seed pois: item at index %d: id cannot be empty", i+1)
		}
		if item.Name == "" {
			return fmt.Errorf("seed pois: item %q: name cannot be empty", item.ID)
		}
		if (item.Lat == nil) != (item.Lon == nil) {
			return fmt.Errorf("seed pois: item %q: lat and lon must be set together", item.ID)
		}
		rows = append(rows, item)
	}

	query := `
	INSERT INTO pois (id, name, category, region, address, lat, lon, visit_duration_hours)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		category = EXCLUDED.category,
		region = EXCLUDED.region,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		visit_duration_hours = EXCLUDED.visit_duration_hours;
	`
	if driver == db.DriverSQLite {
		query = `
		INSERT OR REPLACE INTO pois (
			id,
			name,
			category,
			region,
			address,
			lat,
			lon,
			visit_duration_hours
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
		`
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed pois: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Category, p.Region, p.Address,
			nullFloat(p.Lat), nullFloat(p.Lon), nullFloat(p.VisitDurationHours),
		); err != nil {
			return fmt.Errorf("seed pois: insert id=%q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed pois: commit tx: %w", err)
	}

	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
)

// Postgres-backed implementation of the PoiRepository port.
type SQLPoiRepository struct{ DB *sql.DB }

func NewSQLPoiRepository(db *sql.DB) *SQLPoiRepository {
	return &SQLPoiRepository{DB: db}
}

func (s *SQLPoiRepository) ListPOIs(ctx context.Context, ids []string) (_ []*domain.POI, err error) {
	defer obs.Time(ctx, "repo.sql.ListPOIs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql poi repository: DB is nil")
	}

	if len(ids) == 0 {
		rows, err := s.DB.QueryContext(ctx, `SELECT `+poiColumns+` FROM pois ORDER BY id;`)
		if err != nil {
			return nil, fmt.Errorf("list pois: query pois table: %w", err)
		}
		defer rows.Close()
		return scanPOIs(rows)
	}

	uniq := uniqueIDs(ids)
	rows, err := s.DB.QueryContext(ctx, `SELECT `+poiColumns+` FROM pois WHERE id = ANY($1::text[]);`, uniq)
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	found, err := scanPOIs(rows)
	if err != nil {
		return nil, err
	}
	return inRequestedOrder(ids, found)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"strings"
)

// SQLite-backed implementation of the PoiRepository port.
type SqlitePoiRepository struct{ DB *sql.DB }

func NewSqlitePoiRepository(db *sql.DB) *SqlitePoiRepository {
	return &SqlitePoiRepository{DB: db}
}

func (s *SqlitePoiRepository) ListPOIs(ctx context.Context, ids []string) (_ []*domain.POI, err error) {
	defer obs.Time(ctx, "repo.sqlite.ListPOIs")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite poi repository: DB is nil")
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
	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, id := range uniq {
		ph[i] = "?"
		args[i] = id
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`SELECT %s FROM pois WHERE id IN (%s);`, poiColumns, strings.Join(ph, ","))
	rows, err := s.DB.QueryContext(ctx, q, args...)
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

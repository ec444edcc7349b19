package repositories

import (
	"database/sql"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"strings"
)

const poiColumns = `id, name, category, region, address, lat, lon, visit_duration_hours`

func scanPOIs(rows *sql.Rows) ([]*domain.POI, error) {
	pois := make([]*domain.POI, 0, 64)
	for rows.Next() {
		var (
			p             domain.POI
			lat, lon, dur sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Region, &p.Address, &lat, &lon, &dur); err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		if lat.Valid && lon.Valid {
			p.Coord = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		if dur.Valid {
			h := dur.Float64
			p.VisitDurationHours = &h
		}
		pois = append(pois, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}
	return pois, nil
}

// inRequestedOrder reorders found rows to match ids. Unknown ids fail the lookup.
func inRequestedOrder(ids []string, found []*domain.POI) ([]*domain.POI, error) {
	byID := make(map[string]*domain.POI, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]*domain.POI, 0, len(ids))
	var missing []string
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, p.Clone())
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("list pois: %w: %s", domain.ErrPOINotFound, strings.Join(missing, ", "))
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

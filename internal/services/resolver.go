package services

import (
	"context"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"heritage-itinerary-service/internal/ports"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/width"
)

const (
	DefaultRegionHint     = "陕西省"
	DefaultGeocodeTimeout = 10 * time.Second
)

// Words that describe what a heritage site is rather than where it is.
// Remote geocoders match far more often once they are removed.
var extraneousLocalityWords = []string{
	"非物质文化遗产",
	"非遗",
	"传承基地",
	"传习所",
	"保护中心",
	"项目",
}

// CoordinateResolver turns place names into coordinates through a three-tier
// fallback: remote geocoder, static locality table, regional default.
// It is the only component of the planning pipeline that performs network I/O.
type CoordinateResolver struct {
	geocoder   ports.Geocoder
	regionHint string
	timeout    time.Duration
	fallback   domain.Coordinates
	logger     *slog.Logger
	metrics    *obs.PlannerMetrics
}

type ResolverOption func(*CoordinateResolver)

func WithRegionHint(hint string) ResolverOption {
	return func(r *CoordinateResolver) {
		if strings.TrimSpace(hint) != "" {
			r.regionHint = strings.TrimSpace(hint)
		}
	}
}

func WithGeocodeTimeout(d time.Duration) ResolverOption {
	return func(r *CoordinateResolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithFallback overrides the regional default coordinate.
func WithFallback(c domain.Coordinates) ResolverOption {
	return func(r *CoordinateResolver) {
		if c.Valid() {
			r.fallback = c
		}
	}
}

func WithResolverMetrics(m *obs.PlannerMetrics) ResolverOption {
	return func(r *CoordinateResolver) { r.metrics = m }
}

// NewCoordinateResolver builds a resolver. geocoder may be nil, in which case
// the remote tier is skipped entirely.
func NewCoordinateResolver(geocoder ports.Geocoder, logger *slog.Logger, opts ...ResolverOption) *CoordinateResolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &CoordinateResolver{
		geocoder:   geocoder,
		regionHint: DefaultRegionHint,
		timeout:    DefaultGeocodeTimeout,
		fallback:   DefaultOrigin,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a coordinate for placeName. It never fails: every miss
// falls through to the next tier and ends at the regional default.
func (r *CoordinateResolver) Resolve(ctx context.Context, placeName string) domain.Resolution {
	name := normalizePlace(placeName)
	if name == "" {
		r.record(ctx, domain.TierDefault)
		return domain.Resolution{Coord: r.fallback, Tier: domain.TierDefault}
	}

	if c, ok := r.geocode(ctx, name); ok {
		r.record(ctx, domain.TierRemote)
		return domain.Resolution{Coord: c, Tier: domain.TierRemote}
	}

	if c, ok := LookupLocality(name); ok {
		r.logger.InfoContext(ctx, "resolved place from locality table", slog.String("place", name))
		r.record(ctx, domain.TierTable)
		return domain.Resolution{Coord: c, Tier: domain.TierTable}
	}

	r.logger.WarnContext(ctx, "place unresolved, using regional default",
		slog.String("place", name),
		slog.Float64("lat", r.fallback.Lat),
		slog.Float64("lon", r.fallback.Lon),
	)
	r.record(ctx, domain.TierDefault)
	return domain.Resolution{Coord: r.fallback, Tier: domain.TierDefault}
}

// ResolvePOI resolves a POI lacking coordinates. Every query candidate
// (address, region+name, name, region) is tried against the remote tier
// before any is tried against the locality table. A default-tier result
// means the POI cannot be routed.
func (r *CoordinateResolver) ResolvePOI(ctx context.Context, poi *domain.POI) domain.Resolution {
	if poi.HasCoordinates() {
		return domain.Resolution{Coord: *poi.Coord, Tier: domain.TierProvided}
	}

	candidates := poiQueries(poi)

	for _, q := range candidates {
		if c, ok := r.geocode(ctx, q); ok {
			r.record(ctx, domain.TierRemote)
			r.logger.DebugContext(ctx, "resolved poi remotely",
				slog.String("poi_id", poi.ID), slog.String("poi_name", poi.Name), slog.String("query", q))
			return domain.Resolution{Coord: c, Tier: domain.TierRemote}
		}
	}

	for _, q := range candidates {
		if c, ok := LookupLocality(q); ok {
			r.record(ctx, domain.TierTable)
			r.logger.InfoContext(ctx, "resolved poi from locality table",
				slog.String("poi_id", poi.ID), slog.String("poi_name", poi.Name), slog.String("query", q))
			return domain.Resolution{Coord: c, Tier: domain.TierTable}
		}
	}

	r.record(ctx, domain.TierDefault)
	r.logger.WarnContext(ctx, "poi unresolvable after all fallback tiers",
		slog.String("poi_id", poi.ID), slog.String("poi_name", poi.Name), slog.Int("queries", len(candidates)))
	return domain.Resolution{Coord: r.fallback, Tier: domain.TierDefault}
}

// geocode performs one bounded remote lookup. Any failure is a miss.
func (r *CoordinateResolver) geocode(ctx context.Context, name string) (domain.Coordinates, bool) {
	if r.geocoder == nil {
		return domain.Coordinates{}, false
	}

	query := stripLocalityWords(name)
	if query == "" {
		query = name
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, found, err := r.geocoder.Geocode(callCtx, query, r.regionHint)
	switch {
	case err != nil:
		r.logger.WarnContext(ctx, "remote geocode failed",
			slog.String("query", query), slog.String("region", r.regionHint), slog.Any("error", err))
		r.metrics.GeocodeMiss(ctx, "error")
		return domain.Coordinates{}, false
	case !found:
		r.logger.DebugContext(ctx, "remote geocode no match", slog.String("query", query))
		r.metrics.GeocodeMiss(ctx, "no_match")
		return domain.Coordinates{}, false
	case !c.Valid():
		r.logger.WarnContext(ctx, "remote geocode returned invalid coordinate",
			slog.String("query", query), slog.Float64("lat", c.Lat), slog.Float64("lon", c.Lon))
		r.metrics.GeocodeMiss(ctx, "invalid")
		return domain.Coordinates{}, false
	}

	return c, true
}

func (r *CoordinateResolver) record(ctx context.Context, tier domain.ResolutionTier) {
	r.metrics.Resolution(ctx, string(tier))
}

func poiQueries(poi *domain.POI) []string {
	raw := []string{
		poi.Address,
		strings.TrimSpace(poi.Region + " " + poi.Name),
		poi.Name,
		poi.Region,
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, q := range raw {
		q = normalizePlace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// normalizePlace folds full-width characters and collapses whitespace.
func normalizePlace(s string) string {
	return strings.Join(strings.Fields(width.Narrow.String(s)), " ")
}

func stripLocalityWords(s string) string {
	for _, w := range extraneousLocalityWords {
		s = strings.ReplaceAll(s, w, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

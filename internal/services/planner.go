package services

import (
	"context"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"heritage-itinerary-service/internal/ports"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultResolveConcurrency = 5

	NoteProximity = "route optimized for proximity, not globally minimal"
)

type PlannerOptions struct {
	// Travel speed used to estimate hop durations.
	SpeedKmh float64
	// Maximum number of concurrent coordinate resolutions.
	Concurrency int
	// Optional forecast source for requests that ask for one.
	Forecasts ports.ForecastProvider
}

// Planner assembles itineraries. It holds no per-request state and is safe
// for concurrent use.
type Planner struct {
	resolver *CoordinateResolver
	opts     PlannerOptions
	logger   *slog.Logger
	metrics  *obs.PlannerMetrics
}

func NewPlanner(resolver *CoordinateResolver, opts PlannerOptions, logger *slog.Logger, metrics *obs.PlannerMetrics) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = NewCoordinateResolver(nil, logger, WithResolverMetrics(metrics))
	}
	if opts.SpeedKmh <= 0 {
		opts.SpeedKmh = DefaultTravelSpeedKmh
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultResolveConcurrency
	}
	return &Planner{resolver: resolver, opts: opts, logger: logger, metrics: metrics}
}

// Plan builds a multi-day itinerary for req.
//
// Coordinates are resolved for the origin and for every POI lacking them,
// the routable POIs are sequenced from the origin, and the tour is split into
// day buckets annotated with weather and pace. POIs that cannot be located are
// reported in UnroutablePOIs. If none can be located the original order is
// chunked into days instead and FallbackRouting is set.
//
// An empty origin starts the route at the regional default. When req carries
// no forecast and FetchForecast is set, the forecast for the resolved origin
// is fetched from the configured provider.
//
// The only error returned is the context's, when it ends before planning completes.
func (p *Planner) Plan(ctx context.Context, req domain.TripRequest) (it *domain.Itinerary, err error) {
	start := time.Now()
	defer obs.Time(ctx, "planner.plan")(&err)

	ctx, span := otel.Tracer("Planner").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("origin", req.Origin),
		attribute.Int("day_count", req.DayCount),
		attribute.Int("poi_count", len(req.POIs)),
		attribute.Int("forecast_days", len(req.Forecast)),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context done before planning")
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	dayCount := max(1, req.DayCount)

	originName := strings.TrimSpace(req.Origin)

	pois := make([]*domain.POI, 0, len(req.POIs))
	for _, poi := range req.POIs {
		if poi == nil {
			continue
		}
		pois = append(pois, poi.Clone())
	}

	origin, resolutions, err := p.resolveAll(ctx, originName, pois)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "coordinate resolution interrupted")
		return nil, fmt.Errorf("plan itinerary: resolve coordinates: %w", err)
	}

	routable := make([]*domain.POI, 0, len(pois))
	var unroutable, unroutableLabels []string
	for i, poi := range pois {
		res := resolutions[i]
		if !res.Resolved() {
			unroutable = append(unroutable, poi.ID)
			unroutableLabels = append(unroutableLabels, poiLabel(poi))
			continue
		}
		coord := res.Coord
		poi.Coord = &coord
		routable = append(routable, poi)
	}

	meta := domain.RoutingMeta{
		Origin:     origin.Coord,
		OriginTier: origin.Tier,
		Notes:      []string{NoteProximity},
	}
	switch {
	case originName == "":
		meta.Notes = append(meta.Notes, "no origin given; route starts from the regional default")
	case !origin.Resolved():
		meta.Notes = append(meta.Notes,
			fmt.Sprintf("origin %q could not be located; route starts from the regional default", originName))
	}

	var days []domain.DayPlan
	unroutablePOIs := []string{}

	if len(routable) == 0 && len(pois) > 0 {
		// Nothing can be placed on a map: keep every POI, in input order.
		days = PartitionDays(pois, dayCount)
		meta.FallbackRouting = true
		meta.Notes = append(meta.Notes,
			"fallback routing: no POI could be located, days follow the original order",
			"unresolved POIs: "+strings.Join(unroutableLabels, "、"),
		)
		p.logger.WarnContext(ctx, "no routable POIs, using fallback routing",
			slog.Int("poi_count", len(pois)),
			slog.Int("day_count", dayCount),
		)
	} else {
		ordered := SequenceTour(origin.Coord, routable, p.opts.SpeedKmh)
		days = PartitionDays(ordered, dayCount)
		meta.HopCount = len(ordered)
		for _, poi := range ordered {
			meta.TotalDistanceKm += poi.DistanceFromPrevKm
			meta.TotalTravelHours += poi.TravelTimeHours
		}
		if len(unroutable) > 0 {
			unroutablePOIs = unroutable
			meta.Notes = append(meta.Notes,
				fmt.Sprintf("%d POI(s) could not be located and were left out of the route", len(unroutable)))
			p.logger.WarnContext(ctx, "POIs left out of the route",
				slog.String("pois", strings.Join(unroutableLabels, "、")),
			)
		}
	}

	forecast := req.Forecast
	if len(forecast) == 0 && req.FetchForecast {
		var ok bool
		if forecast, ok = p.fetchForecast(ctx, origin.Coord, dayCount); !ok {
			meta.Notes = append(meta.Notes, "weather forecast unavailable")
		}
	}

	days = AnnotateWeather(days, forecast)
	for i := range days {
		days[i].Pace = ClassifyPace(len(days[i].Items))
	}

	it = &domain.Itinerary{
		PlanID:         uuid.NewString(),
		Days:           days,
		Routing:        meta,
		UnroutablePOIs: unroutablePOIs,
	}

	elapsed := time.Since(start)
	p.metrics.Plan(ctx, meta.FallbackRouting, elapsed.Seconds())

	span.SetAttributes(
		attribute.String("plan_id", it.PlanID),
		attribute.Bool("fallback_routing", meta.FallbackRouting),
		attribute.Int("unroutable", len(unroutablePOIs)),
	)
	span.SetStatus(codes.Ok, "itinerary planned")

	p.logger.InfoContext(ctx, "itinerary planned",
		slog.String("plan_id", it.PlanID),
		slog.String("origin", originName),
		slog.String("origin_tier", string(origin.Tier)),
		slog.Int("days", len(days)),
		slog.Int("routed", meta.HopCount),
		slog.Int("unroutable", len(unroutablePOIs)),
		slog.Bool("fallback", meta.FallbackRouting),
		slog.Float64("distance_km", meta.TotalDistanceKm),
		slog.Int64("dur_ms", elapsed.Milliseconds()),
	)

	return it, nil
}

// resolveAll resolves the origin and every POI lacking coordinates with
// bounded concurrency. Each goroutine writes only its own slot.
func (p *Planner) resolveAll(ctx context.Context, originName string, pois []*domain.POI) (domain.Resolution, []domain.Resolution, error) {
	var origin domain.Resolution
	resolutions := make([]domain.Resolution, len(pois))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		origin = p.resolver.Resolve(gctx, originName)
		return nil
	})

	for i, poi := range pois {
		if poi.HasCoordinates() {
			resolutions[i] = domain.Resolution{Coord: *poi.Coord, Tier: domain.TierProvided}
			continue
		}
		i, poi := i, poi
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolutions[i] = p.resolver.ResolvePOI(gctx, poi)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Resolution{}, nil, err
	}
	// A geocode cut short by cancellation degrades to a miss; report the cancellation instead.
	if err := ctx.Err(); err != nil {
		return domain.Resolution{}, nil, err
	}
	return origin, resolutions, nil
}

// fetchForecast asks the forecast provider about the trip's origin.
// A failure only drops the weather annotation.
func (p *Planner) fetchForecast(ctx context.Context, origin domain.Coordinates, days int) ([]domain.DayForecast, bool) {
	if p.opts.Forecasts == nil {
		return nil, false
	}
	forecast, err := p.opts.Forecasts.Forecast(ctx, origin, days)
	if err != nil {
		p.logger.WarnContext(ctx, "forecast unavailable, planning without weather",
			slog.Float64("lat", origin.Lat),
			slog.Float64("lon", origin.Lon),
			slog.Any("error", err),
		)
		return nil, false
	}
	return forecast, true
}

func poiLabel(poi *domain.POI) string {
	if name := strings.TrimSpace(poi.Name); name != "" {
		return name
	}
	return poi.ID
}

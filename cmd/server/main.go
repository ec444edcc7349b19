package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/adapters/cache"
	"heritage-itinerary-service/internal/adapters/geocode"
	"heritage-itinerary-service/internal/adapters/repositories"
	"heritage-itinerary-service/internal/adapters/weather"
	"heritage-itinerary-service/internal/api"
	"heritage-itinerary-service/internal/api/handlers"
	"heritage-itinerary-service/internal/config"
	"heritage-itinerary-service/internal/platform/db"
	"heritage-itinerary-service/internal/platform/obs"
	"heritage-itinerary-service/internal/ports"
	"heritage-itinerary-service/internal/services"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	serviceName = "heritage-itinerary-service"

	memoryCacheTTL = time.Hour
	redisCacheTTL  = 7 * 24 * time.Hour
)

// main is the application composition root.
// It wires concrete adapters (database, geocoders, caches, forecast) behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := obs.NewLogger(cfg.Env, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meterProvider, err := setupMetrics()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	tracerProvider, err := obs.SetupTracing(serviceName, cfg.TraceExporter, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(shutdownCtx)
	}()
	metrics := obs.NewPlannerMetrics()

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if cfg.DBDriver == db.DriverSQLite {
		if err := initAndSeed(ctx, conn, cfg.DBDriver, cfg.SeedPath); err != nil {
			return err
		}
	}

	repo, sqlCache := newCatalog(conn, cfg.DBDriver)

	caches := []ports.GeocodeCache{cache.NewMemoryGeocodeCache(memoryCacheTTL)}
	if rc := newRedisClient(ctx, cfg.RedisAddr); rc != nil {
		defer rc.Close()
		caches = append(caches, cache.NewRedisGeocodeCache(rc, redisCacheTTL))
	}
	caches = append(caches, sqlCache)

	remote, err := newGeocoder(cfg)
	if err != nil {
		return err
	}
	var geocoder ports.Geocoder
	if remote != nil {
		geocoder = geocode.NewCachedGeocoder(remote, logger, caches...)
	}

	resolverOpts := []services.ResolverOption{
		services.WithRegionHint(cfg.RegionHint),
		services.WithGeocodeTimeout(cfg.GeocodeTimeout),
		services.WithResolverMetrics(metrics),
	}
	// The regional default comes from the locality table; it is never geocoded.
	if c, ok := services.LookupLocality(cfg.DefaultOrigin); ok {
		resolverOpts = append(resolverOpts, services.WithFallback(c))
	} else {
		logger.Warn("DEFAULT_ORIGIN not in the locality table, keeping Xi'an",
			slog.String("default_origin", cfg.DefaultOrigin))
	}
	resolver := services.NewCoordinateResolver(geocoder, logger, resolverOpts...)

	planner := services.NewPlanner(resolver, services.PlannerOptions{
		SpeedKmh:    cfg.TravelSpeedKmh,
		Concurrency: cfg.ResolveConcurrency,
		Forecasts:   weather.NewOpenMeteo(cfg.OpenMeteoURL, nil),
	}, logger, metrics)

	router := api.NewRouter(api.RouterConfig{
		Itineraries: &handlers.ItineraryHandler{Planner: planner, Repo: repo},
		POIs:   &handlers.PoiHandler{Repo: repo},
		Logger: logger,
	})

	// Timeouts are tuned for cold-cache planning (external geocoding latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()
	go func() {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("geocoder", cfg.Geocoder),
			slog.String("db_driver", cfg.DBDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
	return nil
}

func setupMetrics() (*sdkmetric.MeterProvider, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("setup metrics: prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	return provider, nil
}

func newCatalog(conn *sql.DB, driver string) (ports.PoiRepository, ports.GeocodeCache) {
	if driver == db.DriverSQLite {
		return repositories.NewSqlitePoiRepository(conn), cache.NewSqliteGeocodeCache(conn)
	}
	return repositories.NewSQLPoiRepository(conn), cache.NewSQLGeocodeCache(conn)
}

// newRedisClient returns nil when Redis is not configured or unreachable;
// the geocode cache chain then runs without the shared layer.
func newRedisClient(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without shared geocode cache",
			slog.String("addr", addr), slog.Any("error", err))
		rc.Close()
		return nil
	}
	return rc
}

func newGeocoder(cfg config.Config) (ports.Geocoder, error) {
	switch cfg.Geocoder {
	case "baidu":
		return geocode.NewBaiduGeocoder(cfg.BaiduMapAK)
	case "ors":
		return geocode.NewORSGeocoder(cfg.ORSAPIKey)
	default:
		slog.Warn("remote geocoding disabled, resolving from the locality table only")
		return nil, nil
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		slog.Warn("seed file not found, starting with an empty catalog", slog.String("path", seedPath))
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, conn, driver, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	MetricsAddr string `mapstructure:"METRICS_ADDR"`

	TraceExporter string `mapstructure:"TRACE_EXPORTER"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBPath      string `mapstructure:"DB_PATH"`
	SeedPath    string `mapstructure:"SEED_PATH"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`

	Geocoder       string        `mapstructure:"GEOCODER"`
	BaiduMapAK     string        `mapstructure:"BAIDU_MAP_AK"`
	ORSAPIKey      string        `mapstructure:"ORS_API_KEY"`
	RegionHint     string        `mapstructure:"REGION_HINT"`
	GeocodeTimeout time.Duration `mapstructure:"GEOCODE_TIMEOUT"`

	DefaultOrigin      string  `mapstructure:"DEFAULT_ORIGIN"`
	TravelSpeedKmh     float64 `mapstructure:"TRAVEL_SPEED_KMH"`
	ResolveConcurrency int     `mapstructure:"RESOLVE_CONCURRENCY"`

	OpenMeteoURL string `mapstructure:"OPEN_METEO_URL"`
}

var defaults = map[string]any{
	"APP_ENV":             "development",
	"PORT":                "8080",
	"METRICS_ADDR":        ":9090",
	"TRACE_EXPORTER":      "none",
	"DB_DRIVER":           "sqlite",
	"DATABASE_URL":        "",
	"DB_PATH":             "data/app.db",
	"SEED_PATH":           "data/seeds/pois.json",
	"REDIS_ADDR":          "",
	"GEOCODER":            "baidu",
	"BAIDU_MAP_AK":        "",
	"ORS_API_KEY":         "",
	"REGION_HINT":         "陕西省",
	"GEOCODE_TIMEOUT":     "10s",
	"DEFAULT_ORIGIN":      "西安",
	"TRAVEL_SPEED_KMH":    90.0,
	"RESOLVE_CONCURRENCY": 5,
	"OPEN_METEO_URL":      "https://api.open-meteo.com/v1",
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found (using environment variables)")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.Geocoder = strings.ToLower(strings.TrimSpace(cfg.Geocoder))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.TraceExporter = strings.ToLower(strings.TrimSpace(cfg.TraceExporter))

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Geocoder {
	case "baidu":
		if c.BaiduMapAK == "" {
			return fmt.Errorf("BAIDU_MAP_AK is required when GEOCODER=baidu")
		}
	case "ors":
		if c.ORSAPIKey == "" {
			return fmt.Errorf("ORS_API_KEY is required when GEOCODER=ors")
		}
	case "none":
	default:
		return fmt.Errorf("unsupported GEOCODER %q", c.Geocoder)
	}

	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("unsupported TRACE_EXPORTER %q", c.TraceExporter)
	}

	if c.TravelSpeedKmh <= 0 {
		return fmt.Errorf("TRAVEL_SPEED_KMH must be positive, got %v", c.TravelSpeedKmh)
	}
	if c.ResolveConcurrency < 1 {
		return fmt.Errorf("RESOLVE_CONCURRENCY must be at least 1, got %d", c.ResolveConcurrency)
	}

	return nil
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"heritage-itinerary-service/internal/adapters/repositories"
	"heritage-itinerary-service/internal/config"
	"heritage-itinerary-service/internal/platform/db"
	"heritage-itinerary-service/internal/platform/obs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool initializes the catalog schema and seeds POIs from JSON.
// It reads the same environment as the server but needs no geocoder keys.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found (using environment variables)")
	}

	driver := flag.String("driver", config.Get("DB_DRIVER", db.DriverSQLite), "database driver: postgres or sqlite")
	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/pois.json"), "path to the POI seed file")
	skipSeed := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	logger := obs.NewLogger(config.Get("APP_ENV", "development"), os.Stderr)
	slog.SetDefault(logger)

	dsn := config.Get("DB_PATH", "data/app.db")
	if *driver == db.DriverPostgres {
		dsn = os.Getenv("DATABASE_URL")
		if strings.TrimSpace(dsn) == "" {
			logger.Error("DATABASE_URL is required")
			os.Exit(1)
		}
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, *driver, dsn)
	if err != nil {
		logger.Error("open database failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *driver, *seedPath, *skipSeed); err != nil {
		logger.Error("dbtool failed", slog.Any("error", err))
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string, skipSeed bool) error {
	slog.Info("Initializing database schema...", slog.String("driver", driver))
	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		return err
	}
	slog.Info("Schema ready.")

	if skipSeed {
		return nil
	}

	slog.Info("Seeding database...", slog.String("seed", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, driver, seedPath); err != nil {
		return err
	}
	slog.Info("Seeding complete.")

	return nil
}

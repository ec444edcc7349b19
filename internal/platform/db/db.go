package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the catalog database.
// driver is DriverPostgres (dsn is a DATABASE_URL) or DriverSQLite (dsn is a file path).
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case DriverPostgres, "":
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("openDB: open postgres database: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	case DriverSQLite:
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dsn, err)
		}
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("openDB: unsupported driver %q", driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}

package db

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"file_vault/internal/config"
	"file_vault/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration for the given driver.
func Migrate(ctx context.Context, db *sqlx.DB, driver string, log *logger.Logger) error {
	dialect, dir, err := migrationSource(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(log)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect %s: %w", dialect, err)
	}
	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("apply %s migrations: %w", driver, err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sqlx.DB, driver string) (int64, error) {
	dialect, _, err := migrationSource(driver)
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect %s: %w", dialect, err)
	}
	v, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	case config.DriverPostgres:
		return "postgres", "migrations/postgres", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

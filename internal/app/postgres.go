package app

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/guttosm/optionform/config"
	"github.com/guttosm/optionform/db/migrations"
	"github.com/guttosm/optionform/internal/logger"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// migrator applies the journal schema; tests swap it for a stub.
var migrator = Migrate

// InitPostgres opens the diagnostic journal database and brings its schema up
// to date.
//
// Behavior:
//   - Opens cfg.Postgres.DSN() (POSTGRES_URL, or one built from POSTGRES_*).
//   - Pings to validate connectivity.
//   - Applies the embedded goose migrations (submission_failures).
//
// Returns:
//   - *sql.DB: an open connection pool (safe for concurrent use).
//   - error: if opening, pinging or migrating fails; the handle is closed then.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := migrator(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	return db, nil
}

// Migrate applies every pending migration embedded in db/migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	return migrateFS(ctx, db, migrations.FS)
}

func migrateFS(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		logger.L().Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("elapsed", r.Duration).
			Msg("migration applied")
	}
	return nil
}

// postgresOpener is the indirection NewServices uses; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

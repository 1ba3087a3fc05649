package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/information-sharing-networks/xs2a-demo/app/sql/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// withMigrationDB runs fn with goose configured for the embedded schema.
// goose expects a database/sql handle, so the pool is wrapped with the pgx stdlib adapter.
func withMigrationDB(pool *pgxpool.Pool, fn func(db *sql.DB) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(schema.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(db)
}

// Migrate applies all pending migrations and returns the resulting schema version.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var version int64
	err := withMigrationDB(pool, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// MigrationStatus logs the applied and pending migrations (goose writes the table to its logger).
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) error {
	return withMigrationDB(pool, func(db *sql.DB) error {
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		return nil
	})
}

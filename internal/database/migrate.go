package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, m *DBManager) error {
	db := stdlib.OpenDBFromPool(m.Write())
	defer db.Close()

	return goose.UpContext(ctx, db, migrationsDir)
}

// Migrate applies the embedded schema migrations against the primary.
func (m *DBManager) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := gooseUp(ctx, m); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

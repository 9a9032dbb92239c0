package catalog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate creates the products table and seeds it with DefaultEntries.
func Migrate(ctx context.Context, db *sql.DB) error {
	const operation = "catalog.Migrate"

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: set dialect: %w", operation, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("%s: up: %w", operation, err)
	}
	return nil
}

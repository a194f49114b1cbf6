package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds every schema change, registered from the init function of
// each migration file.
var Migrations = migrate.NewMigrations()

// NewMigrator returns a migrator over the registered migrations. The bookkeeping
// tables are bun's defaults.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations)
}

// BringUpToDate creates the bookkeeping tables if needed and applies any
// migration that has not run yet. Applied migrations are skipped, so a database
// that is already current returns an empty group.
func BringUpToDate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply migrations")
	}
	return group, nil
}

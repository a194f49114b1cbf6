package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// IF NOT EXISTS leaves a books table created before migrations were
		// tracked (and its rows) in place.
		_, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				autor TEXT,
				isbn INTEGER,
				editorial TEXT,
				paginas INTEGER
			)
`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS books")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}

// Package migrations bootstraps the catalog schema: the movies table and the
// sequence that hands out record ids.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE SEQUENCE IF NOT EXISTS movies_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		director TEXT NOT NULL,
		release_date TEXT NOT NULL,
		original_language TEXT NOT NULL,
		distributor TEXT NOT NULL,
		description TEXT NOT NULL,
		price DOUBLE NOT NULL,
		genre TEXT NOT NULL,
		rating TEXT NOT NULL,
		score DOUBLE NOT NULL
	)`,
}

// Run applies all migrations. Statements are idempotent, so Run is safe to
// call on every startup.
func Run(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema if it does not exist. The constraints carry the
// data invariants: lowercase unique handles, non-negative employee counts and
// salaries, equity capped at 1.0, and jobs cascading away with their company.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			num_employees INTEGER CHECK (num_employees >= 0),
			logo_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			salary INTEGER CHECK (salary >= 0),
			equity NUMERIC CHECK (equity <= 1.0),
			company_handle VARCHAR(25) NOT NULL
				REFERENCES companies ON DELETE CASCADE
		)`,
	}

	for _, q := range queries {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migration query failed: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/duckdb/duckdb-go/v2"
)

// NewDB opens the DuckDB database at path (use ":memory:" for tests) and
// waits for it to answer a ping before handing it out. Readiness is the only
// place the store is retried; individual calls are attempted exactly once.
func NewDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	ping := func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return struct{}{}, db.PingContext(ctx)
	}

	if _, err := backoff.Retry(context.Background(), ping,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(10*time.Second),
	); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

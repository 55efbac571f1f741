package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dial returns a dial function that opens a pool on dsn and pings it.
func Dial(dsn string, timeout time.Duration) func(ctx context.Context) (*pgxpool.Pool, error) {
	return func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("create pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}
		return pool, nil
	}
}

func Close(_ context.Context, pool *pgxpool.Pool) error {
	pool.Close()
	return nil
}

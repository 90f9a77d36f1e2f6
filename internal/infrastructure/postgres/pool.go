package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions bound the shared connection pool. ConnTimeout caps
// connection acquisition; MaxConnIdle reaps idle connections.
type PoolOptions struct {
	MaxConns    int32
	MinConns    int32
	ConnTimeout time.Duration
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
}

// NewPool opens a pgx pool for dsn and verifies connectivity.
func NewPool(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = opts.MinConns
	cfg.MaxConnIdleTime = opts.MaxConnIdle
	cfg.MaxConnLifetime = opts.MaxConnLife
	cfg.ConnConfig.ConnectTimeout = opts.ConnTimeout
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

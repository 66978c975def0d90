package pg

import (
	"context"
	"fmt"
	"time"

	infraconfig "pairscan-service/internal/infrastructure/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSettings sizes the journal pool.
type PoolSettings struct {
	MaxConns int32
	MinConns int32
	MaxIdle  time.Duration
	// ReadyWithin bounds how long Connect waits for the server to answer.
	ReadyWithin time.Duration
}

func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		MaxConns:    infraconfig.DefaultPGMaxConns,
		MinConns:    infraconfig.DefaultPGMinConns,
		MaxIdle:     2 * time.Minute,
		ReadyWithin: 15 * time.Second,
	}
}

// DB wraps the pool backing the alert journal.
type DB struct {
	Pool *pgxpool.Pool
	dsn  string
}

// Connect opens the pool and blocks until the server accepts a ping.
func Connect(ctx context.Context, dsn string, ps PoolSettings) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns, cfg.MinConns = ps.MaxConns, ps.MinConns
	cfg.MaxConnIdleTime = ps.MaxIdle
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.RuntimeParams["application_name"] = "pairscan"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	db := &DB{Pool: pool, dsn: dsn}
	if err := db.awaitReady(ctx, ps.ReadyWithin); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) awaitReady(ctx context.Context, within time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = within
	if err := backoff.Retry(func() error { return d.Pool.Ping(ctx) }, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return nil
}

func (d *DB) Close()                         { d.Pool.Close() }
func (d *DB) Ping(ctx context.Context) error { return d.Pool.Ping(ctx) }

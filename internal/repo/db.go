package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS compression_jobs (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  input_name TEXT NOT NULL,
  output_name TEXT NOT NULL,
  format TEXT NOT NULL,
  input_size BIGINT NOT NULL,
  output_size BIGINT NOT NULL,
  ratio DOUBLE PRECISION NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`)
	return err
}

package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schema string

// NewPool creates the pgx connection pool and makes sure the deliveries table exists.
func NewPool(ctx context.Context, cfg config.PostgresConfig, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: dsn is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse dsn: %w", err)
	}
	if cfg.Pool.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Pool.MaxConns
	}
	poolCfg.MinConns = cfg.Pool.MinConns
	if cfg.Pool.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Pool.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to apply schema: %w", err)
	}

	logger.Info().Str("layer", "postgres").Int32("max_conns", poolCfg.MaxConns).Msg("postgres pool ready")
	return pool, nil
}

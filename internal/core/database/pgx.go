package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PgxOpts struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
}

// NewPgxPool 建池并 Ping，失败时关闭池
func NewPgxPool(ctx context.Context, o PgxOpts, log *zap.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(o.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	if o.MaxOpenConns > 0 {
		cfg.MaxConns = int32(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		cfg.MinConns = int32(min(o.MaxIdleConns, int(cfg.MaxConns)))
	}
	if o.ConnMaxLifetimeMin > 0 {
		cfg.MaxConnLifetime = time.Duration(o.ConnMaxLifetimeMin) * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("pgx pool ready",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return pool, nil
}

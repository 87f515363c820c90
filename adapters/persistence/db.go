package persistence

import (
	"context"
	"fmt"

	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("db dsn is not configured")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connect PostgreSQL successfully.")
	return pool, nil
}

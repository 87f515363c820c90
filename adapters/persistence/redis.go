package persistence

import (
	"context"
	"fmt"

	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.", zap.String("addr", cfg.Redis.Addr))
	return rdb, nil
}

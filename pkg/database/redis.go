package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"resource-hub-go/internal/config"
	"resource-hub-go/pkg/log"
)

// OpenRedis 初始化 Redis 客户端连接并测试连通性。
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Infow("redis client connected", "addr", cfg.Addr)
	return rdb, nil
}

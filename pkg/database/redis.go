package database

import (
	"context"
	"fmt"
	"time"

	zlog "custody-core/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis 连接 Redis 并做一次 PING 探活。
func ConnectRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}

	zlog.Info("Redis 连接成功")
	return client, nil
}

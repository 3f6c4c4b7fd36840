// Package cache manages the optional Redis connection used for realtime
// notification fan-out.
package cache

import (
	"context"
	"log/slog"
	"time"

	"mealbridge/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client for the given address. Redis is optional:
// on connection failure the returned client is nil and callers degrade to
// database-only notifications.
func Connect(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing without realtime notifications",
			slog.String("error", err.Error()))
		return nil
	}

	middleware.Logger.Info("Redis connected successfully")
	return client
}

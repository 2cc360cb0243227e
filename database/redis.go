package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SriHarshaKodavati/openBill/config"
)

// Redis is nil when no cache is configured or reachable.
var Redis *redis.Client

func ConnectRedis(cfg *config.Config) {
	if cfg.RedisURL == "" {
		slog.Info("Redis not configured, running without cache")
		return
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Warn("⚠️  Invalid REDIS_URL, running without cache", "error", err)
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("⚠️  Redis not available, running without cache", "error", err)
		client.Close()
		return
	}

	Redis = client
	slog.Info("✅ Redis connected successfully")
}

package db

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis opens the Redis connection used as the durable keyword-stats
// backend. REDIS_URL accepts both redis:// URLs and bare host:port addresses.
func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		slog.Warn("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	return err
}

// RedisConfigured reports whether a Redis URL is present in the environment.
func RedisConfigured() bool {
	return os.Getenv("REDIS_URL") != ""
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

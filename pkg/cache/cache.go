// Package cache wraps the optional Redis connection. When REDIS_ADDR is not
// configured the client stays nil and every helper degrades to a safe no-op,
// so single-node deployments run without Redis at all.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/rasoi/config"
)

var rdb *redis.Client

// Connect initialises the Redis client and verifies the connection with a
// ping. Returns (false, nil) when Redis is simply not configured.
func Connect() (bool, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return false, nil
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb = nil // mark as unavailable so helpers no-op safely
		return false, fmt.Errorf("cache: redis ping: %w", err)
	}
	return true, nil
}

// Available reports whether a live Redis connection exists.
func Available() bool { return rdb != nil }

// Incr atomically increments key and returns the new count. The expiry is set
// when the key is created, giving a fixed counting window.
func Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if rdb == nil {
		return 0, fmt.Errorf("cache: not connected")
	}

	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// First hit in this window: start the clock.
		_ = rdb.Expire(ctx, key, window).Err()
	}
	return n, nil
}

// Close releases the Redis connection.
func Close() error {
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for REDIS_URL, or nil when no URL is
// configured. A failed ping is logged but not fatal: the leaderboard
// degrades (queries report the cache unavailable, upserts are skipped)
// rather than taking the whole service down.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		log.Println("REDIS_URL not set, ranking cache disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis ping failed (leaderboard will self-heal once it is reachable): %v", err)
	}

	return client, nil
}

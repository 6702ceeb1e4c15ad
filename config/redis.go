package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis. A nil client is returned when REDIS_URL is
// unset or the server is unreachable: the app runs without caching.
func InitRedis() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without Redis cache")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("❌ Invalid REDIS_URL: %v, running without Redis cache", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis connection failed: %v, running without Redis cache", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}

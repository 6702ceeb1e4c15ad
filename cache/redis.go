package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with Redis. Every operation failure is logged
// and reported as a miss/no-op so the cache never becomes a correctness
// dependency.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Redis get error for %s: %v", key, err)
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("❌ Redis set error for %s: %v", key, err)
		return false
	}
	return true
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("❌ Redis delete error: %v", err)
		return false
	}
	return true
}

func (s *RedisStore) DeletePattern(ctx context.Context, pattern string) bool {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("❌ Redis scan error for %s: %v", pattern, err)
		return false
	}
	return s.Delete(ctx, keys...)
}

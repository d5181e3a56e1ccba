// Package storage provides Redis persistence for cached ranking lookups.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// rankingTTL is how long a cached ranking is kept
const rankingTTL = 7 * 24 * time.Hour

// RedisClient wraps go-redis client.
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ctx     context.Context
}

// NewRedisClient creates a new Redis client. With an empty or unreachable
// URL the client is disabled and every Get misses.
func NewRedisClient(redisURL string) *RedisClient {
	if redisURL == "" {
		log.Println("Redis not configured (REDIS_URL missing), ranking cache disabled")
		return &RedisClient{enabled: false, ctx: context.Background()}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse REDIS_URL: %v", err)
		return &RedisClient{enabled: false, ctx: context.Background()}
	}

	opt.PoolSize = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
		client.Close()
		return &RedisClient{enabled: false, ctx: ctx}
	}

	log.Println("Redis connected successfully")
	return &RedisClient{
		client:  client,
		enabled: true,
		ctx:     ctx,
	}
}

// Enabled reports whether the client is connected
func (r *RedisClient) Enabled() bool {
	return r.enabled
}

// Get retrieves a value from Redis.
func (r *RedisClient) Get(key string) (string, error) {
	if !r.enabled {
		return "", nil
	}
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value in Redis with the ranking expiry.
func (r *RedisClient) Set(key string, value string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Set(r.ctx, key, value, rankingTTL).Err()
}

// Close releases the connection pool.
func (r *RedisClient) Close() error {
	if !r.enabled {
		return nil
	}
	return r.client.Close()
}

package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"quotation-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Quotation cache keys
const (
	QuotationListKey   = "quotations:list"
	QuotationKeyFmt    = "quotation:%s"
	QuotationKeyPrefix = "quotation:"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the cache stays disabled and
// every helper below becomes a no-op.
func Init(cfg *config.Config) error {
	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		// Close the failed client for graceful degradation
		c.Close()
		client = nil
		return err
	}
	client = c
	log.Printf("[Redis] Connected to %s", c.Options().Addr)
	return nil
}

// SetClient replaces the client; nil disables caching
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close closes the connection if one is open
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// QuotationKey is the cache key of one quotation with its items
func QuotationKey(number string) string {
	return fmt.Sprintf(QuotationKeyFmt, number)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateQuotationCaches clears the cached quotation after a tier update.
// The list only carries numbers and dates, so it stays.
func InvalidateQuotationCaches(ctx context.Context, number string) {
	InvalidateKeys(ctx, QuotationKey(number))
}

// InvalidateAll clears the list and every cached quotation
func InvalidateAll(ctx context.Context) {
	InvalidateKeys(ctx, QuotationListKey)
	InvalidatePattern(ctx, QuotationKeyPrefix+"*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

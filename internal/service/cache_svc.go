package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

// Cache TTLs. Surge rankings go stale quickly; category aggregates are
// rebuilt at most hourly by the offline job.
const (
	SurgeCacheTTL    = time.Minute
	CategoryCacheTTL = 5 * time.Minute
	ChannelCacheTTL  = 15 * time.Minute
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendix_cache_hits_total",
		Help: "Total Redis cache hits.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendix_cache_misses_total",
		Help: "Total Redis cache misses.",
	})
)

// CacheService provides a Redis cache-aside layer for trend responses.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

func (c *CacheService) get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err == nil {
		cacheHits.Inc()
	}
	return data, err
}

func (c *CacheService) set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// GetSurge retrieves a cached surge ranking for the given parameters.
func (c *CacheService) GetSurge(ctx context.Context, p model.SurgeParams) ([]byte, error) {
	return c.get(ctx, surgeKey(p))
}

// SetSurge stores a surge ranking response.
func (c *CacheService) SetSurge(ctx context.Context, p model.SurgeParams, data interface{}) error {
	return c.set(ctx, surgeKey(p), data, SurgeCacheTTL)
}

// InvalidateSurge removes all cached surge rankings for a platform. Called
// by the refresh worker when new snapshots land.
func (c *CacheService) InvalidateSurge(ctx context.Context, platform string) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("surge:%s:*", platform), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// GetHotCategories retrieves cached category aggregates.
func (c *CacheService) GetHotCategories(ctx context.Context, platform string, limit int) ([]byte, error) {
	return c.get(ctx, hotCategoriesKey(platform, limit))
}

// SetHotCategories stores category aggregates.
func (c *CacheService) SetHotCategories(ctx context.Context, platform string, limit int, data interface{}) error {
	return c.set(ctx, hotCategoriesKey(platform, limit), data, CategoryCacheTTL)
}

// GetChannel retrieves a cached channel response.
func (c *CacheService) GetChannel(ctx context.Context, channelID string) ([]byte, error) {
	return c.get(ctx, channelKey(channelID))
}

// SetChannel stores a channel response.
func (c *CacheService) SetChannel(ctx context.Context, channelID string, data interface{}) error {
	return c.set(ctx, channelKey(channelID), data, ChannelCacheTTL)
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func surgeKey(p model.SurgeParams) string {
	return fmt.Sprintf("surge:%s:%d:%d:%g", p.Platform, p.Limit, p.Days, p.VelocityDays)
}

func hotCategoriesKey(platform string, limit int) string {
	if platform == "" {
		platform = "all"
	}
	return fmt.Sprintf("categories:hot:%s:%d", platform, limit)
}

func channelKey(channelID string) string {
	return fmt.Sprintf("channel:%s", channelID)
}

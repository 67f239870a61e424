// Package redis provides a best-effort cache for completed rewrites.
// A bullet that was already rewritten with the same keywords, budget
// and style is served from the cache instead of hitting the model
// again. Cache failures never fail a batch; they only cost a miss.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resuforge/rewriter/internal/core/domain"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// DefaultTTL bounds how long a cached rewrite stays valid.
const DefaultTTL = 24 * time.Hour

// Cache is a Redis-backed rewrite cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

// NewCache connects to Redis and verifies the connection.
func NewCache(cfg Config, log *slog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if log == nil {
		log = slog.Default()
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Health pings the Redis server.
func (c *Cache) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// cacheKey hashes the full rewrite identity. The raw bullet text never
// appears in the key.
func cacheKey(text string, kws []string, maxChars int, style domain.Style) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(kws, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(maxChars)))
	h.Write([]byte{0})
	h.Write([]byte(style))
	return "rewrite:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns a previously cached rewrite, if any.
func (c *Cache) Get(ctx context.Context, text string, kws []string, maxChars int, style domain.Style) (string, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(text, kws, maxChars, style)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.log.Debug("cache get failed", "error", err)
		return "", false
	}
	if val == "" {
		return "", false
	}
	return val, true
}

// Set stores a successful rewrite. Errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, text string, kws []string, maxChars int, style domain.Style, result string) {
	if result == "" {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(text, kws, maxChars, style), result, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "error", err)
	}
}

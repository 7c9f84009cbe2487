// Package views counts blog and landing-page views in Redis, counting each
// visitor at most once per page per day.
package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "pageviews:"
	rankingKey = "pageviews:ranking"
	dedupeTTL  = 24 * time.Hour
)

type SlugCount struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

// Counter records and reads view counts.
type Counter interface {
	// Record counts a view of slug by visitorHash and returns the new total.
	// Repeat views inside the de-duplication window return the unchanged
	// total.
	Record(ctx context.Context, slug, visitorHash string) (int64, error)
	Count(ctx context.Context, slug string) (int64, error)
	Counts(ctx context.Context, slugs []string) (map[string]int64, error)
	Top(ctx context.Context, n int) ([]SlugCount, error)
}

func countKey(slug string) string { return keyPrefix + slug }

func dedupeKey(visitorHash, slug string) string {
	return keyPrefix + "dedupe:" + visitorHash + ":" + slug
}

// RedisCounter is safe for concurrent use.
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Dial parses a redis:// URL and checks the server answers.
func Dial(ctx context.Context, rawURL string) (*RedisCounter, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return &RedisCounter{rdb: rdb}, nil
}

func (c *RedisCounter) Close() error {
	return c.rdb.Close()
}

func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCounter) Record(ctx context.Context, slug, visitorHash string) (int64, error) {
	if slug = strings.TrimSpace(slug); slug == "" {
		return 0, fmt.Errorf("slug cannot be empty")
	}
	dedupe := ""
	if visitorHash != "" {
		dedupe = dedupeKey(visitorHash, slug)
		fresh, err := c.rdb.SetNX(ctx, dedupe, 1, dedupeTTL).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to check view dedupe: %w", err)
		}
		if !fresh {
			return c.Count(ctx, slug)
		}
	}

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, countKey(slug))
	pipe.ZIncrBy(ctx, rankingKey, 1, slug)
	if _, err := pipe.Exec(ctx); err != nil {
		// Release the dedupe key so the visitor's next view is counted.
		if dedupe != "" {
			_ = c.rdb.Del(context.WithoutCancel(ctx), dedupe).Err()
		}
		return 0, fmt.Errorf("failed to record view: %w", err)
	}
	return incr.Val(), nil
}

func (c *RedisCounter) Count(ctx context.Context, slug string) (int64, error) {
	n, err := c.rdb.Get(ctx, countKey(slug)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read views for %s: %w", slug, err)
	}
	return n, nil
}

func (c *RedisCounter) Counts(ctx context.Context, slugs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}
	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = countKey(s)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read views: %w", err)
	}
	for i, v := range vals {
		var n int64
		if s, ok := v.(string); ok {
			n, _ = strconv.ParseInt(s, 10, 64)
		}
		out[slugs[i]] = n
	}
	return out, nil
}

func (c *RedisCounter) Top(ctx context.Context, n int) ([]SlugCount, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := c.rdb.ZRevRangeWithScores(ctx, rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read view ranking: %w", err)
	}
	out := make([]SlugCount, 0, len(zs))
	for _, z := range zs {
		slug, _ := z.Member.(string)
		out = append(out, SlugCount{Slug: slug, Views: int64(z.Score)})
	}
	return out, nil
}

// NopCounter is used when Redis is not configured. Every count is zero.
type NopCounter struct{}

func (NopCounter) Record(context.Context, string, string) (int64, error) { return 0, nil }

func (NopCounter) Count(context.Context, string) (int64, error) { return 0, nil }

func (NopCounter) Counts(_ context.Context, slugs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(slugs))
	for _, s := range slugs {
		out[s] = 0
	}
	return out, nil
}

func (NopCounter) Top(context.Context, int) ([]SlugCount, error) { return nil, nil }

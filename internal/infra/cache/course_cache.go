// Package cache caches course content fetched from the spreadsheet source.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

const (
	catalogKey       = "catalog"
	entriesKeyPrefix = "course:"
)

// CourseCache stores the catalog and course rows as JSON with a TTL.
type CourseCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCourseCache creates a cache; keys are namespaced by prefix.
func NewCourseCache(client *redis.Client, prefix string, ttl time.Duration) *CourseCache {
	return &CourseCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *CourseCache) GetCatalog(ctx context.Context) ([]entities.Course, bool, error) {
	var courses []entities.Course
	ok, err := c.get(ctx, c.prefix+catalogKey, &courses)
	return courses, ok, err
}

func (c *CourseCache) SetCatalog(ctx context.Context, courses []entities.Course) error {
	return c.set(ctx, c.prefix+catalogKey, courses)
}

func (c *CourseCache) GetEntries(ctx context.Context, courseCode string) ([]entities.CourseEntry, bool, error) {
	var entries []entities.CourseEntry
	ok, err := c.get(ctx, c.prefix+entriesKeyPrefix+courseCode, &entries)
	return entries, ok, err
}

func (c *CourseCache) SetEntries(ctx context.Context, courseCode string, entries []entities.CourseEntry) error {
	return c.set(ctx, c.prefix+entriesKeyPrefix+courseCode, entries)
}

func (c *CourseCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	return true, nil
}

func (c *CourseCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

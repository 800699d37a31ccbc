// Package cache: Redis cache-aside для производных данных (хайлайты сессий).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uniconnect/ama-service/internal/domain"
)

const highlightsPrefix = "ama:highlights:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

type HighlightCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHighlightCache(client *redis.Client, ttl time.Duration) *HighlightCache {
	return &HighlightCache{client: client, ttl: ttl}
}

func highlightsKey(sessionID int64) string {
	return highlightsPrefix + strconv.FormatInt(sessionID, 10)
}

// Get возвращает (хайлайты, true) при попадании, (_, false, nil) при промахе.
func (c *HighlightCache) Get(ctx context.Context, sessionID int64) (domain.Highlights, bool, error) {
	var h domain.Highlights
	data, err := c.client.Get(ctx, highlightsKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return h, false, nil
		}
		return h, false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, false, fmt.Errorf("cache unmarshal: %w", err)
	}
	return h, true, nil
}

func (c *HighlightCache) Set(ctx context.Context, sessionID int64, h domain.Highlights) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, highlightsKey(sessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *HighlightCache) Delete(ctx context.Context, sessionID int64) error {
	return c.client.Del(ctx, highlightsKey(sessionID)).Err()
}

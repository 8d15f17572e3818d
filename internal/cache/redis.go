package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_storefront/internal/session"
	"github.com/redis/go-redis/v9"
)

const maxJitterMinutes = 5

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, id string) (*session.Session, error) {
	key := cacheKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var s session.Session
	if err2 := json.Unmarshal(data, &s); err2 != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err2)
	}

	return &s, nil
}

func (r RedisCache) Set(ctx context.Context, s *session.Session) error {
	key := cacheKey(s.ID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(maxJitterMinutes)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, id string) error {
	key := cacheKey(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Package redisstore keeps visitor-scoped preferences in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-site/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a stored preference survives without being rewritten.
const DefaultTTL = 365 * 24 * time.Hour

// KVStore implements domain.KeyValueStore for one visitor.
type KVStore struct {
	client    *redis.Client
	visitorID string
	ttl       time.Duration
}

// ForVisitor scopes the store to visitorID.
func ForVisitor(client *redis.Client, visitorID string, ttl time.Duration) *KVStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &KVStore{client: client, visitorID: visitorID, ttl: ttl}
}

func (s *KVStore) key(k string) string {
	return "pref:" + s.visitorID + ":" + k
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

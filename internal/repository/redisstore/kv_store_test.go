package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-site/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeysAreScopedToVisitor(t *testing.T) {
	a := ForVisitor(nil, "visitor-a", 0)
	b := ForVisitor(nil, "visitor-b", time.Hour)

	assert.Equal(t, "pref:visitor-a:theme", a.key(domain.ThemeKey))
	assert.NotEqual(t, a.key(domain.ThemeKey), b.key(domain.ThemeKey))
	assert.Equal(t, DefaultTTL, a.ttl)
	assert.Equal(t, time.Hour, b.ttl)
}

func TestUnreachableServerIsNotMissingKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := ForVisitor(client, "v", 0).Get(context.Background(), domain.ThemeKey)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrKeyNotFound))
}

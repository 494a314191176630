// Package prefstore picks where a visitor's preferences live for the
// duration of one request: a long-lived cookie, or Redis keyed by visitor id.
package prefstore

import (
	"context"
	"net/http"
	"time"

	"portfolio-site/internal/delivery/http/middleware"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository/redisstore"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const (
	cookiePrefix = "pref_"
	cookieTTL    = 365 * 24 * time.Hour
)

// Factory builds the KeyValueStore for the current request.
type Factory func(c *gin.Context) domain.KeyValueStore

// CookieStore keeps preferences in cookies on the visitor's browser.
// Values written during a request are visible to later reads in that request.
type CookieStore struct {
	c       *gin.Context
	secure  bool
	written map[string]string
}

// NewCookieStore wraps the request/response pair of c.
func NewCookieStore(c *gin.Context, secure bool) *CookieStore {
	return &CookieStore{c: c, secure: secure, written: map[string]string{}}
}

func (s *CookieStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.written[key]; ok {
		return v, nil
	}
	v, err := s.c.Cookie(cookiePrefix + key)
	if err != nil {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *CookieStore) Set(_ context.Context, key, value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(cookiePrefix+key, value, int(cookieTTL.Seconds()), "/", "", s.secure, true)
	s.written[key] = value
	return nil
}

// Cookies returns a Factory backed by CookieStore.
func Cookies(secure bool) Factory {
	return func(c *gin.Context) domain.KeyValueStore {
		return NewCookieStore(c, secure)
	}
}

// Redis returns a Factory that scopes a Redis store to the request's visitor id.
func Redis(client *goredis.Client) Factory {
	return func(c *gin.Context) domain.KeyValueStore {
		return redisstore.ForVisitor(client, middleware.VisitorID(c), redisstore.DefaultTTL)
	}
}

// New selects the backend named by kind ("redis" or "cookie"). Redis is only
// used when a client is available.
func New(kind string, client *goredis.Client, secure bool) Factory {
	if kind == "redis" && client != nil {
		return Redis(client)
	}
	return Cookies(secure)
}

package prefstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository/redisstore"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieStoreRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	store := NewCookieStore(c, true)
	_, err := store.Get(context.Background(), domain.ThemeKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(context.Background(), domain.ThemeKey, "light"))
	v, err := store.Get(context.Background(), domain.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pref_theme", cookies[0].Name)
	assert.True(t, cookies[0].Secure)

	// The next request carries the cookie back.
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])
	v, err = NewCookieStore(c2, true).Get(context.Background(), domain.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestNewFallsBackToCookies(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := New("redis", nil, false)(c).(*CookieStore)
	assert.True(t, ok)

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	_, ok = New("redis", client, false)(c).(*redisstore.KVStore)
	assert.True(t, ok)
}

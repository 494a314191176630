package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONTACT_STATUS_RESET", "")
	t.Setenv("THEME_STORE", "redis")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.ContactStatusReset)
	assert.Equal(t, "cookie", cfg.ThemeStore, "redis theme store needs REDIS_URL")
	assert.Equal(t, "3617316306", cfg.AdsSlotHero)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CONTACT_STATUS_RESET", "1500")
	t.Setenv("RELAY_TIMEOUT", "2s")
	t.Setenv("ALLOWED_ORIGINS", "https://example.com/, ,https://www.example.com")
	t.Setenv("SMTP_USERNAME", "owner@example.com")
	t.Setenv("SMTP_FROM_EMAIL", "")
	t.Setenv("RELAY_PROVIDER", "SMTP")
	t.Setenv("RATE_LIMIT_FAIL_CLOSED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.ContactStatusReset)
	assert.Equal(t, 2*time.Second, cfg.RelayTimeout)
	assert.Equal(t, []string{"https://example.com", "https://www.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "owner@example.com", cfg.SMTPFromEmail)
	assert.Equal(t, "smtp", cfg.RelayProvider)
	assert.True(t, cfg.RateLimitFailClosed)
}

func TestEmailJSConfigured(t *testing.T) {
	cfg := &Config{EmailJSServiceID: "service_x", EmailJSTemplateID: "template_y"}
	assert.False(t, cfg.EmailJSConfigured())

	cfg.EmailJSPublicKey = "pk"
	assert.True(t, cfg.EmailJSConfigured())
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string
	SiteURL string
	// Content
	ContentPath  string // Empty = embedded default content
	ContentWatch bool
	// Contact relay
	RelayProvider      string // "emailjs" or "smtp"
	RelayTimeout       time.Duration
	ContactStatusReset time.Duration
	ContactFormTTL     time.Duration
	// EmailJS Configuration
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSEndpoint   string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Advertisement slots
	AdsClient       string
	AdsSlotHero     string
	AdsSlotProjects string
	AdsSlotFooter   string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	ThemeStore    string // "cookie" or "redis"
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	RateLimitFailClosed       bool
	// CORS
	AllowedOrigins []string
	// Logging
	LogLevel  string
	LogFormat string
}

func LoadConfig() (*Config, error) {
	// .env only matters locally; missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		SiteURL: strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		// Content
		ContentPath:  getEnv("CONTENT_PATH", ""),
		ContentWatch: getEnvBool("CONTENT_WATCH", true),
		// Contact relay
		RelayProvider:      strings.ToLower(getEnv("RELAY_PROVIDER", "emailjs")),
		RelayTimeout:       getEnvDuration("RELAY_TIMEOUT", 10*time.Second),
		ContactStatusReset: getEnvDuration("CONTACT_STATUS_RESET", 3*time.Second),
		ContactFormTTL:     getEnvDuration("CONTACT_FORM_TTL", 30*time.Minute),
		// EmailJS
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		EmailJSEndpoint:   getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		// SMTP
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Ads
		AdsClient:       getEnv("ADS_CLIENT", ""),
		AdsSlotHero:     getEnv("ADS_SLOT_HERO", "3617316306"),
		AdsSlotProjects: getEnv("ADS_SLOT_PROJECTS", "7899982721"),
		AdsSlotFooter:   getEnv("ADS_SLOT_FOOTER", "7297347495"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		ThemeStore:    strings.ToLower(getEnv("THEME_STORE", "cookie")),
		// Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		RateLimitFailClosed:       getEnvBool("RATE_LIMIT_FAIL_CLOSED", false),
		// CORS
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", nil),
		// Logging
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}

	if cfg.ThemeStore == "redis" && cfg.RedisURL == "" {
		log.Println("WARNING: THEME_STORE=redis but REDIS_URL is missing. Falling back to cookie theme store.")
		cfg.ThemeStore = "cookie"
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// EmailJSConfigured reports whether all three EmailJS tokens are present.
func (c *Config) EmailJSConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("3s") or a bare number of milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}

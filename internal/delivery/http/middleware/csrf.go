package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header scripts send the token in
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input plain HTML forms send the token in
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	csrfContextKey = "csrf_token"
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every response carries a csrf_token cookie. State-changing requests must
// echo it back, either in the X-CSRF-Token header (scripts) or in the
// csrf_token form field (plain HTML forms rendered by the server).
//
// The JSON contact endpoint and the health check are exempt; they are meant
// for non-browser clients and the contact route is rate limited instead.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/v1/contact": true,
		"/v1/health":  true,
	}

	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",     // Domain (empty = current domain)
				secure, // HTTPS only in production
				false,  // HttpOnly = false so JS can read it
			)
			csrfCookie = newToken
		}
		c.Set(csrfContextKey, csrfCookie)

		if csrfExemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		// For safe methods, no validation needed
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.GetHeader(CSRFTokenHeaderName)
		if token == "" {
			token = c.PostForm(CSRFTokenFormField)
		}

		if token == "" {
			rejectCSRF(c, "missing")
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(csrfCookie)) != 1 {
			rejectCSRF(c, "mismatch")
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token for the current request so templates can
// embed it in forms.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func rejectCSRF(c *gin.Context, reason string) {
	security.DefaultLogger().LogCSRFViolation(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		requestID(c),
		c.Request.URL.Path,
		reason,
	)
	msg := "Missing CSRF token"
	if reason == "mismatch" {
		msg = "Invalid CSRF token"
	}
	response.Error(c, http.StatusForbidden, msg, nil)
	c.Abort()
}

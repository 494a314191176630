package middleware

import (
	"net/http"
	"time"

	"portfolio-site/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorCookieName identifies a browser across requests so it keeps its own contact form.
	VisitorCookieName = "visitor_id"
	visitorCookieTTL  = 365 * 24 * time.Hour
)

// Visitor assigns every browser a stable anonymous id.
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookieName)
		if _, perr := uuid.Parse(id); err != nil || perr != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, id, int(visitorCookieTTL.Seconds()), "/", "", secure, true)
		}
		c.Set(string(domain.KeyVisitorID), id)
		c.Next()
	}
}

// VisitorID returns the id assigned by Visitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(string(domain.KeyVisitorID))
}

// Package audit records contact submission outcomes as security events.
package audit

import (
	"errors"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
)

// ContactOutcome logs the result of one submit. A rejected duplicate submit
// while another is in flight is not an event.
func ContactOutcome(c *gin.Context, email string, err error) {
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		return
	}

	sl := security.DefaultLogger()
	ctx := c.Request.Context()
	reqID := c.GetString(string(domain.KeyRequestID))

	var verr *domain.ValidationError
	switch {
	case err == nil:
		sl.LogContactOutcome(ctx, security.EventContactSent, email, c.ClientIP(), reqID, nil, nil)
	case errors.As(err, &verr):
		sl.LogContactOutcome(ctx, security.EventValidationFailed, email, c.ClientIP(), reqID, InvalidFields(verr), nil)
	default:
		sl.LogContactOutcome(ctx, security.EventRelayFailed, email, c.ClientIP(), reqID, nil, err)
	}
}

// InvalidFields lists the rejected fields in form order.
func InvalidFields(verr *domain.ValidationError) []string {
	fields := make([]string, 0, len(verr.Kinds))
	for _, f := range domain.ContactFields {
		if _, ok := verr.Kinds[f]; ok {
			fields = append(fields, string(f))
		}
	}
	return fields
}

package audit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInvalidFieldsKeepsFormOrder(t *testing.T) {
	verr := &domain.ValidationError{Kinds: map[domain.ContactField]domain.ErrorKind{
		domain.FieldMessage: domain.ErrorRequired,
		domain.FieldName:    domain.ErrorRequired,
		domain.FieldEmail:   domain.ErrorInvalidFormat,
	}}
	assert.Equal(t, []string{"name", "email", "message"}, InvalidFields(verr))
}

func TestContactOutcomeEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "portfolio-site", "test")
	restore := security.SetDefaultLogger(sl)
	defer restore()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/contact", nil)

	ContactOutcome(c, "jane@x.com", nil)
	ContactOutcome(c, "jane@x.com", domain.ErrSubmissionInFlight)
	ContactOutcome(c, "", &domain.ValidationError{Kinds: map[domain.ContactField]domain.ErrorKind{domain.FieldName: domain.ErrorRequired}})
	ContactOutcome(c, "jane@x.com", errors.New("relay down"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "contact_sent", entries[0].Message)
	assert.Equal(t, "validation_failed", entries[1].Message)
	assert.Equal(t, "relay_failed", entries[2].Message)
}

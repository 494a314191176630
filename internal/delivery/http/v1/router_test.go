package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"portfolio-site/config"
	"portfolio-site/internal/delivery/http/middleware"
	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository/yamlcontent"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayFunc func(ctx context.Context, msg domain.ContactMessage) error

func (f relayFunc) Send(ctx context.Context, msg domain.ContactMessage) error { return f(ctx, msg) }

func testConfig() *config.Config {
	return &config.Config{
		GinMode:                   gin.TestMode,
		SiteURL:                   "http://localhost:8080",
		ThemeStore:                "cookie",
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 100,
		RateLimitGlobalThreshold:  1000,
	}
}

func newTestRouter(t *testing.T, relay domain.Relay, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validate := validation.New()
	content, err := yamlcontent.NewRepository("", validate)
	require.NoError(t, err)

	r, err := NewRouter(RouterDeps{
		ContentRepo: content,
		ContactUC:   usecase.NewContactUsecase(relay, validate, usecase.ContactOptions{}),
		ThemeUC:     usecase.NewThemeUsecase(),
		HealthUC:    usecase.NewHealthUsecase(content, relay, nil),
		Config:      cfg,
	})
	require.NoError(t, err)
	return r
}

type envelope struct {
	response.Response
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func postJSON(r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var validContact = domain.ContactRequest{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}

func TestSubmitContactSuccess(t *testing.T) {
	r := newTestRouter(t, relayFunc(func(context.Context, domain.ContactMessage) error { return nil }), testConfig())

	w := postJSON(r, "/v1/contact", validContact)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var snap domain.ContactSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, domain.StatusSuccess, snap.Status)
	assert.Equal(t, domain.ContactRequest{}, snap.Values)
}

func TestSubmitContactErrors(t *testing.T) {
	tests := []struct {
		name    string
		relay   domain.Relay
		body    any
		code    int
		message string
	}{
		{
			name:  "validation",
			relay: relayFunc(func(context.Context, domain.ContactMessage) error { return nil }),
			body:  domain.ContactRequest{Name: "Jane", Email: "jane@", Subject: "", Message: "x"},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:    "relay rejected",
			relay:   relayFunc(func(context.Context, domain.ContactMessage) error { return &domain.RelayError{Provider: "emailjs", StatusCode: 400, Reason: "bad template"} }),
			body:    validContact,
			code:    http.StatusBadGateway,
			message: "Failed to send message. Please try again later.",
		},
		{
			name:    "relay not configured",
			relay:   nil,
			body:    validContact,
			code:    http.StatusServiceUnavailable,
			message: "Contact service temporarily unavailable",
		},
		{
			name: "malformed body",
			body: "not an object",
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.relay, testConfig())
			w := postJSON(r, "/v1/contact", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())

			env := decode(t, w)
			assert.False(t, env.Success)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Message)
			}
			assert.NotContains(t, w.Body.String(), "bad template")
		})
	}
}

func TestSubmitContactValidationDetails(t *testing.T) {
	r := newTestRouter(t, relayFunc(func(context.Context, domain.ContactMessage) error { return nil }), testConfig())

	w := postJSON(r, "/v1/contact", domain.ContactRequest{Email: "jane@x"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decode(t, w)
	var fields domain.FieldErrors
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Equal(t, domain.FieldErrors{
		Name:    "Name is required",
		Email:   "Invalid email format",
		Subject: "Subject is required",
		Message: "Message is required",
	}, fields)

	var snap domain.ContactSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, domain.StatusIdle, snap.Status)
	assert.Equal(t, "jane@x", snap.Values.Email)
	assert.Equal(t, fields, snap.Errors)
}

func TestSubmitContactInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	relay := relayFunc(func(context.Context, domain.ContactMessage) error {
		close(started)
		<-release
		return nil
	})
	r := newTestRouter(t, relay, testConfig())
	visitor := &http.Cookie{Name: middleware.VisitorCookieName, Value: "5f0c8b4e-0b2a-4d4e-9a51-2a4f0a7d9c11"}

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = postJSON(r, "/v1/contact", validContact, visitor)
	}()
	<-started

	second := postJSON(r, "/v1/contact", validContact, visitor)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"status":"submitting"}`, string(decode(t, second).Error))

	req := httptest.NewRequest(http.MethodGet, "/v1/contact/status", nil)
	req.AddCookie(visitor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var snap domain.ContactSnapshot
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &snap))
	assert.Equal(t, domain.StatusSubmitting, snap.Status)

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusOK, first.Code)
}

func patchField(r *gin.Engine, field, value string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	body, _ := json.Marshal(FieldUpdate{Value: value})
	req := httptest.NewRequest(http.MethodPatch, "/v1/contact/fields/"+field, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
		if c.Name == middleware.CSRFTokenCookieName {
			req.Header.Set(middleware.CSRFTokenHeaderName, c.Value)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateContactField(t *testing.T) {
	r := newTestRouter(t, relayFunc(func(context.Context, domain.ContactMessage) error { return nil }), testConfig())
	visitor := &http.Cookie{Name: middleware.VisitorCookieName, Value: "9b1d7c2e-3f4a-4b5c-8d6e-7f8091a2b3c4"}
	csrf := &http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "test-token"}

	w := postJSON(r, "/v1/contact", domain.ContactRequest{}, visitor)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = patchField(r, "name", "Jane", visitor, csrf)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap domain.ContactSnapshot
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &snap))
	assert.Equal(t, "Jane", snap.Values.Name)
	assert.Empty(t, snap.Errors.Name)
	assert.Equal(t, "Email is required", snap.Errors.Email)
	assert.Equal(t, domain.StatusIdle, snap.Status)

	assert.Equal(t, http.StatusBadRequest, patchField(r, "phone", "123", visitor, csrf).Code)
	assert.Equal(t, http.StatusForbidden, patchField(r, "email", "jane@x.com", visitor).Code)
}

func TestContactStatusForNewVisitor(t *testing.T) {
	r := newTestRouter(t, nil, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/contact/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap domain.ContactSnapshot
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &snap))
	assert.Equal(t, domain.StatusIdle, snap.Status)
}

func TestContactRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitContactThreshold = 2
	r := newTestRouter(t, relayFunc(func(context.Context, domain.ContactMessage) error { return nil }), cfg)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, postJSON(r, "/v1/contact", validContact).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postJSON(r, "/v1/contact", validContact).Code)
}

func TestThemeToggle(t *testing.T) {
	r := newTestRouter(t, nil, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/theme", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var theme ThemeResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &theme))
	assert.Equal(t, ThemeResponse{Theme: domain.ThemeDark, Dark: true}, theme)

	var csrf *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CSRFTokenCookieName {
			csrf = c
		}
	}
	require.NotNil(t, csrf)

	// Missing token.
	req := httptest.NewRequest(http.MethodPost, "/v1/theme/toggle", nil)
	req.AddCookie(csrf)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/theme/toggle", nil)
	req.AddCookie(csrf)
	req.Header.Set(middleware.CSRFTokenHeaderName, csrf.Value)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &theme))
	assert.Equal(t, ThemeResponse{Theme: domain.ThemeLight, Dark: false}, theme)

	var pref *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "pref_theme" {
			pref = c
		}
	}
	require.NotNil(t, pref)
	assert.Equal(t, "light", pref.Value)
}

func TestContentAndHealth(t *testing.T) {
	r := newTestRouter(t, relayFunc(func(context.Context, domain.ContactMessage) error { return nil }), testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/content", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Portfolio
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, "Alex Morgan", p.Hero.Name)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]string
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &report))
	assert.Equal(t, "ok", report["status"])
}

func TestHealthDegradedWithoutRelay(t *testing.T) {
	r := newTestRouter(t, nil, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "System degraded", env.Message)
}

func TestSwaggerDoc(t *testing.T) {
	r := newTestRouter(t, nil, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/contact/status")
}

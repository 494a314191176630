package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-site/internal/domain"
)

const defaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig identifies the EmailJS service, template and account.
// PrivateKey is only needed when the account enforces strict mode for
// non-browser callers.
type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	HTTPClient *http.Client
}

// EmailJSRelay sends contact messages through the EmailJS REST API.
type EmailJSRelay struct {
	cfg    EmailJSConfig
	client *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSRelay creates an EmailJS relay
func NewEmailJSRelay(cfg EmailJSConfig) *EmailJSRelay {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEmailJSEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &EmailJSRelay{cfg: cfg, client: client}
}

// IsConfigured checks that all three EmailJS tokens are set
func (r *EmailJSRelay) IsConfigured() bool {
	return r.cfg.ServiceID != "" && r.cfg.TemplateID != "" && r.cfg.PublicKey != ""
}

// Send posts the message as template params named after the form fields.
func (r *EmailJSRelay) Send(ctx context.Context, msg domain.ContactMessage) error {
	if !r.IsConfigured() {
		return domain.ErrRelayNotConfigured
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   r.cfg.ServiceID,
		TemplateID:  r.cfg.TemplateID,
		UserID:      r.cfg.PublicKey,
		AccessToken: r.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"subject": msg.Subject,
			"message": msg.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &domain.RelayError{Provider: "emailjs", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &domain.RelayError{
			Provider:   "emailjs",
			StatusCode: resp.StatusCode,
			Reason:     strings.TrimSpace(string(reason)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

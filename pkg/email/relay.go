package email

import (
	"fmt"

	"portfolio-site/config"
	"portfolio-site/internal/domain"
)

// NewRelay builds the relay selected by RELAY_PROVIDER. It returns
// ErrRelayNotConfigured when the selected provider lacks credentials so the
// caller can decide whether to run without a contact form.
func NewRelay(cfg *config.Config) (domain.Relay, error) {
	switch cfg.RelayProvider {
	case "", "emailjs":
		relay := NewEmailJSRelay(EmailJSConfig{
			Endpoint:   cfg.EmailJSEndpoint,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		})
		if !relay.IsConfigured() {
			return nil, fmt.Errorf("emailjs: %w", domain.ErrRelayNotConfigured)
		}
		return relay, nil
	case "smtp":
		svc := NewEmailService(cfg)
		if !svc.IsConfigured() {
			return nil, fmt.Errorf("smtp: %w", domain.ErrRelayNotConfigured)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.RelayProvider)
	}
}

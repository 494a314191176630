package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"portfolio-site/config"
	"portfolio-site/internal/domain"
	"portfolio-site/pkg/logger"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	siteName  string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	SiteName    string
}

// NewEmailService creates a new SMTP relay from the SMTP_* settings
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		siteName:  cfg.SiteURL,
	}
}

// contactEmailTemplate is the HTML template for contact form emails
var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #4f46e5; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New message from your portfolio</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.SenderName}} ({{.SenderEmail}})</div>
            </div>
            <div class="field">
                <div class="label">Subject:</div>
                <div>{{.Subject}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Sent from the contact form on {{.SiteName}}.</p>
            <p>Reply directly to answer {{.SenderEmail}}.</p>
        </div>
    </div>
</body>
</html>`))

// Send relays a contact message over SMTP. It honours ctx for the dial and
// uses the ctx deadline for the whole conversation.
func (s *EmailService) Send(ctx context.Context, msg domain.ContactMessage) error {
	if !s.IsConfigured() {
		return domain.ErrRelayNotConfigured
	}

	raw, err := s.buildMessage(ContactEmailData{
		SenderName:  msg.Name,
		SenderEmail: msg.Email,
		Subject:     msg.Subject,
		Message:     msg.Message,
		SiteName:    s.siteName,
	})
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, s.port)
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: err.Error()}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return &domain.RelayError{Provider: "smtp", Reason: err.Error()}
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return &domain.RelayError{Provider: "smtp", Reason: "starttls: " + err.Error()}
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return &domain.RelayError{Provider: "smtp", Reason: "auth: " + err.Error()}
		}
	}

	if err := client.Mail(s.fromEmail); err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: "mail from: " + err.Error()}
	}
	if err := client.Rcpt(s.toEmail); err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: "rcpt to: " + err.Error()}
	}
	w, err := client.Data()
	if err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: "data: " + err.Error()}
	}
	if _, err := w.Write(raw); err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: "write: " + err.Error()}
	}
	if err := w.Close(); err != nil {
		return &domain.RelayError{Provider: "smtp", Reason: err.Error()}
	}
	// The server accepted the message when DATA closed.
	if err := client.Quit(); err != nil {
		logger.Log.Warn("smtp quit failed after message was accepted", "host", s.host, "error", err)
	}
	return nil
}

// buildMessage renders the MIME message for data.
func (s *EmailService) buildMessage(data ContactEmailData) ([]byte, error) {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("Contact Form: %s", headerValue(data.Subject))

	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		headerValue(data.SenderEmail),
		subject,
		body.String(),
	)), nil
}

// headerValue strips line breaks so visitor input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

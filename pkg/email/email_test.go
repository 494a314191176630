package email

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"portfolio-site/config"
	"portfolio-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMessage = domain.ContactMessage{
	Name:    "Jane",
	Email:   "jane@x.com",
	Subject: "Hi",
	Message: "Hello <b>there</b>",
}

func TestEmailJSRelaySend(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	relay := NewEmailJSRelay(EmailJSConfig{
		Endpoint:   srv.URL,
		ServiceID:  "service_abc",
		TemplateID: "template_def",
		PublicKey:  "public_key",
	})

	require.NoError(t, relay.Send(context.Background(), testMessage))
	assert.Equal(t, "service_abc", got.ServiceID)
	assert.Equal(t, "template_def", got.TemplateID)
	assert.Equal(t, "public_key", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, map[string]string{
		"name":    "Jane",
		"email":   "jane@x.com",
		"subject": "Hi",
		"message": "Hello <b>there</b>",
	}, got.TemplateParams)
}

func TestEmailJSRelayRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid\n"))
	}))
	defer srv.Close()

	relay := NewEmailJSRelay(EmailJSConfig{Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p"})

	err := relay.Send(context.Background(), testMessage)
	var relayErr *domain.RelayError
	require.True(t, errors.As(err, &relayErr))
	assert.Equal(t, http.StatusBadRequest, relayErr.StatusCode)
	assert.Equal(t, "The template ID is invalid", relayErr.Reason)
}

func TestEmailJSRelayNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	relay := NewEmailJSRelay(EmailJSConfig{Endpoint: url, ServiceID: "s", TemplateID: "t", PublicKey: "p"})
	err := relay.Send(context.Background(), testMessage)

	var relayErr *domain.RelayError
	require.True(t, errors.As(err, &relayErr))
	assert.Zero(t, relayErr.StatusCode)
}

func TestEmailJSRelayNotConfigured(t *testing.T) {
	relay := NewEmailJSRelay(EmailJSConfig{ServiceID: "s"})
	assert.ErrorIs(t, relay.Send(context.Background(), testMessage), domain.ErrRelayNotConfigured)
}

func TestSMTPBuildMessage(t *testing.T) {
	svc := NewEmailService(&config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "owner@example.com",
		SMTPPassword:   "secret",
		SMTPFromEmail:  "noreply@example.com",
		ContactEmailTo: "owner@example.com",
		SiteURL:        "https://example.com",
	})
	require.True(t, svc.IsConfigured())

	raw, err := svc.buildMessage(ContactEmailData{
		SenderName:  "Jane",
		SenderEmail: "jane@x.com",
		Subject:     "Hi\r\nBcc: victim@example.com",
		Message:     "Hello <script>",
		SiteName:    "https://example.com",
	})
	require.NoError(t, err)

	msg := string(raw)
	head, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, head, "Subject: Contact Form: Hi  Bcc: victim@example.com")
	assert.NotContains(t, head, "\r\nBcc:")
	assert.Contains(t, head, "Reply-To: jane@x.com")
	assert.Contains(t, body, "Hello &lt;script&gt;")
}

// fakeSMTP accepts one connection, answers the client up to the end of DATA
// with dataReply, then drops the connection on QUIT without answering.
func fakeSMTP(t *testing.T, dataReply string) (host, port string, received <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)

		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			switch cmd := strings.ToUpper(line); {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				_ = tp.PrintfLine("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				_ = tp.PrintfLine("250 OK")
			case cmd == "DATA":
				_ = tp.PrintfLine("354 go ahead")
				lines, err := tp.ReadDotLines()
				if err != nil {
					return
				}
				out <- strings.Join(lines, "\n")
				_ = tp.PrintfLine("%s", dataReply)
			case cmd == "QUIT":
				return
			default:
				_ = tp.PrintfLine("502 not implemented")
			}
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port, out
}

func smtpService(host, port string) *EmailService {
	return NewEmailService(&config.Config{
		SMTPHost:       host,
		SMTPPort:       port,
		SMTPUsername:   "owner@example.com",
		SMTPPassword:   "secret",
		SMTPFromEmail:  "noreply@example.com",
		ContactEmailTo: "owner@example.com",
		SiteURL:        "https://example.com",
	})
}

func TestSMTPSendAcceptedDespiteQuitFailure(t *testing.T) {
	host, port, received := fakeSMTP(t, "250 queued")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, smtpService(host, port).Send(ctx, testMessage))

	select {
	case data := <-received:
		assert.Contains(t, data, "Subject: Contact Form: Hi")
		assert.Contains(t, data, "Reply-To: jane@x.com")
	case <-time.After(time.Second):
		t.Fatal("server never received the message")
	}
}

func TestSMTPSendRejectedAtData(t *testing.T) {
	host, port, _ := fakeSMTP(t, "554 rejected as spam")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := smtpService(host, port).Send(ctx, testMessage)

	var relayErr *domain.RelayError
	require.True(t, errors.As(err, &relayErr), "got %v", err)
	assert.Equal(t, "smtp", relayErr.Provider)
	assert.Contains(t, relayErr.Reason, "rejected as spam")
}

func TestNewRelaySelection(t *testing.T) {
	_, err := NewRelay(&config.Config{RelayProvider: "emailjs"})
	assert.ErrorIs(t, err, domain.ErrRelayNotConfigured)

	relay, err := NewRelay(&config.Config{
		RelayProvider:     "emailjs",
		EmailJSServiceID:  "s",
		EmailJSTemplateID: "t",
		EmailJSPublicKey:  "p",
	})
	require.NoError(t, err)
	assert.IsType(t, &EmailJSRelay{}, relay)

	_, err = NewRelay(&config.Config{RelayProvider: "smtp"})
	assert.ErrorIs(t, err, domain.ErrRelayNotConfigured)

	_, err = NewRelay(&config.Config{RelayProvider: "pigeon"})
	assert.Error(t, err)
}

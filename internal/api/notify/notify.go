// Package notify sends transactional mail through the SendGrid v3 HTTP API.
// Delivery is best-effort: callers fire it from a detached goroutine and only
// observe the boolean outcome in logs.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dellmdq/OT109-Server/config"
)

// Notifier is the outbound notification contract consumed by the auth flow.
type Notifier interface {
	// SendWelcome reports whether the welcome mail was accepted for delivery.
	SendWelcome(ctx context.Context, name, email string) bool
}

const sendEndpoint = "https://api.sendgrid.com/v3/mail/send"

var _ Notifier = (*SendGridNotifier)(nil)

// SendGridNotifier posts mail to SendGrid. A zero or disabled config turns
// it into a logged no-op so registration never depends on mail settings.
type SendGridNotifier struct {
	logger   *slog.Logger
	client   *http.Client
	endpoint string
	cfg      config.MailConfig
}

func NewSendGridNotifier(cfg config.MailConfig, logger *slog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		logger:   logger,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: sendEndpoint,
		cfg:      cfg,
	}
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (n *SendGridNotifier) SendWelcome(ctx context.Context, name, email string) bool {
	l := n.logger.With(slog.String("notifier", "SendWelcome"), slog.String("email", email))

	if !n.cfg.Enabled || n.cfg.APIKey == "" {
		l.InfoContext(ctx, "Mail disabled, skipping welcome message")
		return false
	}

	body, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []address{{Email: email, Name: name}}}},
		From:             address{Email: n.cfg.FromEmail, Name: n.cfg.FromName},
		Subject:          "Welcome to Somos Mas",
		Content: []content{{
			Type:  "text/plain",
			Value: fmt.Sprintf("Hi %s, thanks for joining Somos Mas!", name),
		}},
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to build welcome mail payload", slog.Any("error", err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		l.ErrorContext(ctx, "Failed to build welcome mail request", slog.Any("error", err))
		return false
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		l.WarnContext(ctx, "Welcome mail request failed", slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		l.WarnContext(ctx, "Welcome mail rejected", slog.Int("status", resp.StatusCode))
		return false
	}

	l.InfoContext(ctx, "Welcome mail accepted for delivery")
	return true
}

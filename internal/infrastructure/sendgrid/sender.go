// Package sendgrid is the HTTP client for the email delivery service.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// Sender posts mail-send payloads with bearer-token auth. The service
// acknowledges accepted mail with 202; anything else is a failure.
type Sender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ ports.EmailSender = (*Sender)(nil)

// NewSender builds a sender from email configuration.
func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To  []address `json:"to"`
	BCC []address `json:"bcc,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type payload struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// Send submits one email. A single attempt only; retry policy belongs to
// the caller.
func (s *Sender) Send(ctx context.Context, msg domain.EmailMessage) error {
	p := payload{
		Personalizations: []personalization{{To: []address{{Email: msg.To}}}},
		From:             address{Email: msg.FromEmail, Name: msg.FromName},
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/html", Value: msg.HTML}},
	}
	if msg.BCC != "" {
		p.Personalizations[0].BCC = []address{{Email: msg.BCC}}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail send error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}

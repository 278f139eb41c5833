// Package twilio is the HTTP client for the SMS delivery service.
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// Sender posts form-encoded message payloads with basic auth. The service
// acknowledges queued messages with 201; anything else is a failure.
type Sender struct {
	baseURL    string
	accountSID string
	authToken  string
	client     *http.Client
}

var _ ports.SMSSender = (*Sender)(nil)

// NewSender builds a sender from SMS configuration.
func NewSender(cfg config.SMSConfig) *Sender {
	return &Sender{
		baseURL:    cfg.BaseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send submits one text message.
func (s *Sender) Send(ctx context.Context, msg domain.SMSMessage) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	form := url.Values{}
	form.Set("To", msg.To)
	form.Set("From", msg.From)
	form.Set("Body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms send error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}

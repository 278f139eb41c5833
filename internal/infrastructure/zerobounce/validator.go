// Package zerobounce is the HTTP client for the external email validation
// service.
package zerobounce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/ports"
)

// StatusValid is the only verdict treated as sendable by the dispatcher.
const StatusValid = "valid"

// Validator queries the validation endpoint with an API key.
type Validator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ ports.EmailValidator = (*Validator)(nil)

// NewValidator builds a validator from configuration.
func NewValidator(cfg config.ValidationConfig) *Validator {
	return &Validator{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Validate returns the service's raw status string for the address. Any
// transport or API failure is an error; the caller decides what a
// non-"valid" status means.
func (v *Validator) Validate(ctx context.Context, email string) (string, error) {
	parsed, err := url.Parse(v.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %s: %w", v.endpoint, err)
	}
	query := parsed.Query()
	query.Set("api_key", v.apiKey)
	query.Set("email", email)
	query.Set("ip_address", "")
	parsed.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if payload.Status == "" {
		return "unknown", nil
	}

	return payload.Status, nil
}

// Package ecanvasser is the HTTP client for the upstream field-organizing
// API that records canvassing interactions.
package ecanvasser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// Client talks to the interaction API with bearer-token auth. Listing uses
// a longer timeout than single-resource lookups because pages are large.
type Client struct {
	baseURL    string
	token      string
	pageLimit  int
	listClient *http.Client
	getClient  *http.Client
}

var _ ports.InteractionSource = (*Client)(nil)

// NewClient builds a client from source configuration.
func NewClient(cfg config.SourceConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
		pageLimit:  cfg.PageLimit,
		listClient: &http.Client{Timeout: 30 * time.Second},
		getClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListInteractions pages through the interaction collection until a short
// page signals the end. The upstream caps page sizes, so a single large
// request is not trusted to cover the whole data set.
func (c *Client) ListInteractions(ctx context.Context) ([]domain.Interaction, error) {
	var all []domain.Interaction
	offset := 0

	for {
		endpoint, err := c.listURL(offset)
		if err != nil {
			return nil, err
		}

		var page []domain.Interaction
		if err := c.get(ctx, c.listClient, endpoint, &page); err != nil {
			return nil, fmt.Errorf("list interactions (offset %d): %w", offset, err)
		}

		all = append(all, page...)
		if len(page) < c.pageLimit {
			return all, nil
		}
		offset += c.pageLimit
	}
}

// GetContact resolves the contact sub-resource of an interaction.
func (c *Client) GetContact(ctx context.Context, id int64) (domain.CanvassContact, error) {
	var contact domain.CanvassContact
	if err := c.get(ctx, c.getClient, c.resourceURL("contact", id), &contact); err != nil {
		return domain.CanvassContact{}, fmt.Errorf("get contact %d: %w", id, err)
	}
	return contact, nil
}

// GetHouse resolves the location sub-resource of an interaction.
func (c *Client) GetHouse(ctx context.Context, id int64) (domain.House, error) {
	var house domain.House
	if err := c.get(ctx, c.getClient, c.resourceURL("house", id), &house); err != nil {
		return domain.House{}, fmt.Errorf("get house %d: %w", id, err)
	}
	return house, nil
}

// GetUser resolves the staff member who logged an interaction.
func (c *Client) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	if err := c.get(ctx, c.getClient, c.resourceURL("user", id), &user); err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (c *Client) listURL(offset int) (string, error) {
	parsed, err := url.Parse(c.baseURL + "/interaction")
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", c.baseURL, err)
	}
	query := parsed.Query()
	query.Set("limit", strconv.Itoa(c.pageLimit))
	query.Set("offset", strconv.Itoa(offset))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (c *Client) resourceURL(resource string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", c.baseURL, resource, id)
}

// get performs an authorized GET and decodes the body into v. The API wraps
// some responses in a {"data": ...} envelope and returns others bare; both
// shapes are accepted.
func (c *Client) get(ctx context.Context, client *http.Client, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	return decodeEnvelope(body, v)
}

func decodeEnvelope(body []byte, v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

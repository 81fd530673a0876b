package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/config"
)

// ProviderError is a failure reported by the mail provider. Detail carries
// the provider's own message when it sent one.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mail provider error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("mail provider error (status %d)", e.StatusCode)
}

// Client talks to the transactional email provider's REST API.
type Client struct {
	config     *config.MailConfig
	httpClient *http.Client
}

// NewClient creates a mail provider client.
func NewClient(cfg *config.MailConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// sendRequest is the provider's send payload.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// sendResponse is the provider's success payload.
type sendResponse struct {
	ID string `json:"id"`
}

// errorResponse is the provider's failure payload.
type errorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
}

// Send delivers one email and returns the provider's delivery identifier.
// fromName/replyTo are optional; the configured sender is used as the
// envelope from, with the caller's name prepended when given.
func (c *Client) Send(ctx context.Context, to, subject, body, fromName, replyTo string) (string, error) {
	from := c.config.FromEmail
	name := c.config.FromName
	if fromName != "" {
		name = fromName
	}
	if name != "" {
		from = fmt.Sprintf("%s <%s>", name, c.config.FromEmail)
	}

	payload := sendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
		ReplyTo: replyTo,
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIBase+"/emails", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return "", &ProviderError{StatusCode: resp.StatusCode, Detail: errResp.Message}
	}

	var result sendResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("mail provider returned no delivery id")
	}

	return result.ID, nil
}

// Package email implements the confirmation-mail notifier over the
// provider's HTTP API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/newsletter-service/internal/config"
	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/subscription"
)

// Client sends confirmation mail through the provider's POST /email
// endpoint. The configured timeout bounds every send; expiry is reported as
// an email-operation failure like any other transport error.
type Client struct {
	baseURL    string
	sender     string
	authToken  string
	httpClient *http.Client
}

// NewClient creates an email client from configuration.
func NewClient(cfg config.EmailConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		sender:    cfg.Sender,
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// sendEmailRequest is the provider's wire format.
type sendEmailRequest struct {
	From    string `json:"From"`
	To      string `json:"To"`
	Subject string `json:"Subject"`
	Content string `json:"Content"`
}

// Send posts the message to the provider. Implements
// subscription.EmailNotifier.
func (c *Client) Send(ctx context.Context, recipient domain.Subscriber, subject, content string) error {
	body, err := json.Marshal(sendEmailRequest{
		From:    c.sender,
		To:      recipient.Email(),
		Subject: subject,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w: %w", subscription.ErrEmailOperation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create email request: %w: %w", subscription.ErrEmailOperation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post email: %w: %w", subscription.ErrEmailOperation, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post email: %w: provider returned %d", subscription.ErrEmailOperation, resp.StatusCode)
	}
	return nil
}

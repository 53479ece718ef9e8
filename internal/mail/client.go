package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client submits outbound messages to the network's mail API. It
// implements core.Mailer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	adminToken string
}

func NewClient(baseURL, adminToken string) *Client {
	return &Client{httpClient: &http.Client{}, baseURL: baseURL, adminToken: adminToken}
}

func (c *Client) Send(ctx context.Context, to, subject, body string, headers map[string]string) error {
	payload := map[string]any{
		"to":      to,
		"subject": subject,
		"body":    body,
		"headers": headers,
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/api/messages", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("send message request: %w", err)
	}
	req.SetBasicAuth("admin", c.adminToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send message to %s: status %d: %s", to, resp.StatusCode, string(respBody))
	}
	return nil
}

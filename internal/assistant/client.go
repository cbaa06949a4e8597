package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"studyhub-backend/internal/models"
)

const (
	ChatPath       = "/api/ai/chat"
	DefaultTimeout = 45 * time.Second
)

// Client calls the completion proxy over HTTP.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient targets the proxy at baseURL (e.g. "http://localhost:8080").
// token is sent as a bearer credential when non-empty.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + ChatPath,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete sends messages to the proxy and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	payload, err := json.Marshal(models.CompletionRequest{Messages: messages})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, "failed reading completion response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("completion proxy returned status %d", resp.StatusCode)
	}

	var parsed models.CompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "failed to parse completion response")
	}
	if parsed.Message == "" {
		return "", errors.New("completion response has no message")
	}
	return parsed.Message, nil
}

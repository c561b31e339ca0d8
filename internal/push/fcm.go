// Package push implements the FCM HTTP v1 delivery transport.
package push

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrUnregistered marks a device token the transport no longer accepts.
// Callers remove the token from the user record when they see this.
var ErrUnregistered = errors.New("push token unregistered")

// Message is a single push payload.
type Message struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Client sends messages through the FCM HTTP v1 endpoint.
type Client struct {
	endpoint    string
	bearerToken string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a push client. The endpoint is the full send URL.
// Sends are rate limited to stay under the transport's per-project quota.
func NewClient(endpoint, bearerToken string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:    endpoint,
		bearerToken: bearerToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// 500 sends per second, burst of 50.
		rateLimiter: rate.NewLimiter(rate.Limit(500), 50),
		logger:      logger,
	}
}

// sendRequest is the wire format of the v1 send call.
type sendRequest struct {
	Message wireMessage `json:"message"`
}

type wireMessage struct {
	MessageID    string            `json:"message_id,omitempty"`
	Token        string            `json:"token"`
	Notification wireNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type wireNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send delivers one message to one token. Returns the transport's message
// name on success, or ErrUnregistered when the token is no longer valid.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if msg.Token == "" {
		return "", errors.New("empty token")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	payload := sendRequest{
		Message: wireMessage{
			MessageID: uuid.NewString(),
			Token:     msg.Token,
			Notification: wireNotification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read push response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		var out sendResponse
		if err := json.Unmarshal(respBody, &out); err != nil {
			return "", fmt.Errorf("decode push response: %w", err)
		}
		return out.Name, nil
	}

	var errResp errorResponse
	_ = json.Unmarshal(respBody, &errResp)

	// UNREGISTERED (404) and invalid-token INVALID_ARGUMENT (400) both
	// mean the token should be dropped from the user record.
	if errResp.Error.Status == "UNREGISTERED" ||
		resp.StatusCode == http.StatusNotFound ||
		(resp.StatusCode == http.StatusBadRequest && errResp.Error.Status == "INVALID_ARGUMENT") {
		return "", fmt.Errorf("%w: %s", ErrUnregistered, errResp.Error.Message)
	}

	if c.logger != nil {
		c.logger.Warn("push send failed",
			"status", resp.StatusCode,
			"error_status", errResp.Error.Status,
		)
	}

	return "", fmt.Errorf("push send failed with status %d: %s", resp.StatusCode, errResp.Error.Status)
}

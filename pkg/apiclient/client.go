package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a response body is read.
var maxResponseBytes int64 = 8 << 20

// Doer is what repositories depend on; *Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path, token string, body, out any) error
}

// Client talks JSON to the remote booking API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("component", "apiclient")),
	}
}

// Do sends body as JSON and decodes the answer into out when out is non-nil.
// An empty token means an anonymous call.
func (c *Client) Do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Remote call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	if int64(len(raw)) > maxResponseBytes {
		c.log.Warn("Remote answer too large",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int64("limit", maxResponseBytes),
		)
		return fmt.Errorf("%s %s: body over %d bytes: %w", method, path, maxResponseBytes, ErrInvalidResponse)
	}

	c.log.Debug("Remote call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if looksLikeMarkup(raw) {
		c.log.Warn("Remote answered with markup",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s %s: %w", method, path, ErrInvalidResponse)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode: %v: %w", method, path, err, ErrInvalidResponse)
	}

	return nil
}

// looksLikeMarkup spots HTML pages served by a misrouted proxy or SPA fallback.
func looksLikeMarkup(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if msg, ok := body.Error.(string); ok {
		return msg
	}
	return ""
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client is the JSON transport used by the connector.
type Client interface {
	GetJSON(ctx context.Context, url string) (map[string]any, error)
	PostJSON(ctx context.Context, url string, body any) (map[string]any, error)
	PutJSON(ctx context.Context, url string, body any) (map[string]any, error)
	DeleteJSON(ctx context.Context, url string) (map[string]any, error)
}

// Config holds transport settings.
type Config struct {
	// APIKey is sent as the basic auth password.
	APIKey string
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BackoffMs is the first retry delay.
	BackoffMs int
	// BackoffMaxMs caps the retry delay.
	BackoffMaxMs int
	// Trace logs every request at debug level.
	Trace bool
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	client *http.Client
	cfg    Config
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewHTTPClient creates a client. A nil logger disables logging.
func NewHTTPClient(cfg Config, logger *zap.Logger) *HTTPClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		cfg:    cfg,
		logger: logger,
		sleep:  sleepContext,
	}
}

// GetJSON issues a GET request.
func (c *HTTPClient) GetJSON(ctx context.Context, url string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// PostJSON issues a POST request with a JSON body.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// PutJSON issues a PUT request with a JSON body.
func (c *HTTPClient) PutJSON(ctx context.Context, url string, body any) (map[string]any, error) {
	return c.do(ctx, http.MethodPut, url, body)
}

// DeleteJSON issues a DELETE request.
func (c *HTTPClient) DeleteJSON(ctx context.Context, url string) (map[string]any, error) {
	return c.do(ctx, http.MethodDelete, url, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body any) (map[string]any, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt, lastErr)
			c.logger.Debug("Retrying request",
				zap.String("method", method),
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		result, err := c.once(ctx, method, url, payload)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !retryable(method, err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *HTTPClient) once(ctx context.Context, method, url string, payload []byte) (map[string]any, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.SetBasicAuth("anystring", c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, URL: url, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if c.cfg.Trace {
		c.logger.Debug("HTTP request",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("bytes", len(data)),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Method:     method,
			URL:        url,
			Status:     resp.StatusCode,
			Body:       string(data),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, &Error{Method: method, URL: url, Status: resp.StatusCode, Body: string(data), Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

func (c *HTTPClient) backoff(attempt int, lastErr error) time.Duration {
	var terr *Error
	if errors.As(lastErr, &terr) && terr.RetryAfter > 0 {
		return terr.RetryAfter
	}

	backoff := time.Duration(c.cfg.BackoffMs) * time.Duration(1<<uint(attempt-1)) * time.Millisecond
	if max := time.Duration(c.cfg.BackoffMaxMs) * time.Millisecond; max > 0 && backoff > max {
		backoff = max
	}
	return backoff
}

func retryable(method string, err error) bool {
	var terr *Error
	if !errors.As(err, &terr) {
		return false
	}
	if terr.Status == http.StatusTooManyRequests {
		return true
	}

	idempotent := method == http.MethodGet || method == http.MethodPut || method == http.MethodDelete
	if !idempotent {
		return false
	}
	return terr.Status == 0 || terr.Status >= 500
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

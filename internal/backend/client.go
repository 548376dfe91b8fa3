package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"clipstudio/internal/api"
)

const (
	// defaultTimeout stays under typical reverse-proxy idle-connection limits.
	defaultTimeout        = 110 * time.Second
	defaultRetries        = 2
	defaultRetryBaseDelay = 800 * time.Millisecond
	defaultJitterCeiling  = 250 * time.Millisecond
	defaultPollInterval   = 1500 * time.Millisecond
	defaultPollCeiling    = 20 * time.Minute
)

// Config captures the runtime settings required to talk to the backend.
type Config struct {
	BaseURL        string
	TimeoutSeconds int
	Retries        int
	RetryBaseMS    int
	PollIntervalMS int
	PollCeilingMin int
}

// Client issues requests against the content pipeline backend.
type Client struct {
	cfg        Config
	httpClient *http.Client

	retries        int
	retryBaseDelay time.Duration
	pollInterval   time.Duration
	pollCeiling    time.Duration

	jitter  func() time.Duration
	sleeper func(time.Duration)
	now     func() time.Time
	logger  *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetries overrides the retry budget (additional attempts after the first).
func WithRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
	}
}

// WithRetryBaseDelay overrides the backoff base delay.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryBaseDelay = delay
		}
	}
}

// WithJitter overrides the backoff jitter source (useful for tests).
func WithJitter(jitter func() time.Duration) Option {
	return func(c *Client) {
		if jitter != nil {
			c.jitter = jitter
		}
	}
}

// WithSleeper overrides how retry and poll sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithClock overrides the wall clock used for the polling ceiling (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPolling overrides the job polling cadence and ceiling.
func WithPolling(interval, ceiling time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
		if ceiling > 0 {
			c.pollCeiling = ceiling
		}
	}
}

// WithLogger attaches a logger for retry and polling diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a backend client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	retries := defaultRetries
	if cfg.Retries > 0 {
		retries = cfg.Retries
	}
	baseDelay := defaultRetryBaseDelay
	if cfg.RetryBaseMS > 0 {
		baseDelay = time.Duration(cfg.RetryBaseMS) * time.Millisecond
	}
	pollInterval := defaultPollInterval
	if cfg.PollIntervalMS > 0 {
		pollInterval = time.Duration(cfg.PollIntervalMS) * time.Millisecond
	}
	pollCeiling := defaultPollCeiling
	if cfg.PollCeilingMin > 0 {
		pollCeiling = time.Duration(cfg.PollCeilingMin) * time.Minute
	}

	client := &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: timeout},
		retries:        retries,
		retryBaseDelay: baseDelay,
		pollInterval:   pollInterval,
		pollCeiling:    pollCeiling,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(defaultJitterCeiling)))
		},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// MediaURL resolves a backend media reference against the configured origin.
func (c *Client) MediaURL(ref string) string {
	return api.MediaURL(c.cfg.BaseURL, ref)
}

// do issues one HTTP request with transient-failure retries. It returns the
// response body and status for any HTTP-level answer outside the retry set,
// letting the caller decide what a non-2xx means; network failures surface as
// errors once the retry budget is spent.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) ([]byte, int, error) {
	target := api.JoinAPI(c.cfg.BaseURL, endpoint)

	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("backend %s: encode body: %w", endpoint, err)
		}
	}

	attempts := c.retries + 1
	var (
		lastBody    []byte
		lastStatus  int
		lastErr     error
		timedOut    bool
		gotResponse bool
	)

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		respBody, status, err := c.doOnce(ctx, method, target, endpoint, encoded)
		if err == nil {
			if !retryableStatus(status) {
				return respBody, status, nil
			}
			gotResponse = true
			lastBody, lastStatus, lastErr = respBody, status, nil
		} else {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil, 0, err
			}
			gotResponse = false
			timedOut = isTimeout(err)
			lastBody, lastStatus, lastErr = nil, 0, err
		}

		if attempt == attempts-1 {
			break
		}

		delay := c.backoffDelay(attempt)
		c.logger.Debug("retrying backend request",
			"endpoint", endpoint,
			"attempt", attempt+1,
			"delay", delay,
			"status", lastStatus,
			"error", errString(lastErr))
		if err := c.sleep(ctx, delay); err != nil {
			return nil, 0, err
		}
	}

	if gotResponse {
		// Transient status survived every attempt; hand the final response back.
		return lastBody, lastStatus, nil
	}
	if timedOut {
		return nil, 0, fmt.Errorf("%w: %s after %d attempts: %v", ErrRequestTimeout, endpoint, attempts, lastErr)
	}
	return nil, 0, fmt.Errorf("backend %s: failed after %d attempts: %w", endpoint, attempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, method, target, endpoint string, encoded []byte) ([]byte, int, error) {
	var reader io.Reader
	if encoded != nil {
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("backend %s: new request: %w", endpoint, err)
	}
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend %s: http error: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("backend %s: read body: %w", endpoint, err)
	}
	return respBody, resp.StatusCode, nil
}

// backoffDelay computes base * 2^attempt plus jitter; attempt is 0-based.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retryBaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay + c.jitter()
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// postJSON issues a POST and decodes the JSON answer. Non-2xx statuses become
// a *StatusError carrying any backend-provided message.
func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	body, status, err := c.do(ctx, http.MethodPost, endpoint, in)
	if err != nil {
		return err
	}
	return decodeResponse(endpoint, body, status, out)
}

// getJSON issues a GET and decodes the JSON answer.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return decodeResponse(endpoint, body, status, out)
}

func decodeResponse(endpoint string, body []byte, status int, out any) error {
	if status < 200 || status >= 300 {
		return &StatusError{
			StatusCode: status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(body)),
			Message:    extractErrorMessage(body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("backend %s: decode response: %w", endpoint, err)
	}
	return nil
}

// extractErrorMessage pulls the backend's error text out of an error envelope.
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if trimmed := strings.TrimSpace(envelope.Error); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(envelope.Message)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Timeout()
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

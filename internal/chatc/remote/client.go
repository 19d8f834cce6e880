// Package remote sends a user message to the chat endpoint and returns the
// reply. One request per message, bounded by a timeout, no retries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second

	// Placeholder replaces a reply missing from an otherwise valid response
	Placeholder = "(no reply)"

	maxResponseBytes = 1 << 20
)

// Request is the JSON body sent to the endpoint
type Request struct {
	Message string `json:"message"`
}

// Config configures a Client
type Config struct {
	Endpoint           string
	Timeout            time.Duration
	RateLimitPerMinute int          // 0 disables client-side limiting
	HTTPClient         *http.Client // nil uses a default client
	Logger             *zap.Logger
}

// Client posts messages to the chat endpoint
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60), cfg.RateLimitPerMinute)
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}
}

// Endpoint returns the configured endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts message and returns the reply. Every failure is an *Error whose
// Kind tells timeouts, connectivity problems and other failures apart.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return "", &Error{Kind: KindRateLimited, Err: errors.New("client-side rate limit reached")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	jsonData, err := json.Marshal(Request{Message: message})
	if err != nil {
		return "", &Error{Kind: KindOther, Err: fmt.Errorf("error marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", &Error{Kind: KindOther, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		rerr := classify(ctx, err)
		c.logger.Debug("request failed", zap.String("kind", string(rerr.Kind)), zap.Error(err))
		return "", rerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", classify(ctx, fmt.Errorf("error reading response: %w", err))
	}

	c.logger.Debug("reply received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindOther
		if resp.StatusCode == http.StatusTooManyRequests {
			kind = KindRateLimited
		}
		return "", &Error{Kind: kind, StatusCode: resp.StatusCode, Err: fmt.Errorf("API error: %s", errorText(body))}
	}

	reply, err := parseReply(body)
	if err != nil {
		return "", &Error{Kind: KindOther, Err: err}
	}
	return reply, nil
}

// parseReply extracts the "reply" field. Valid JSON of any other shape yields
// Placeholder; invalid JSON is an error.
func parseReply(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return Placeholder, nil
	}
	reply, ok := obj["reply"].(string)
	if !ok || strings.TrimSpace(reply) == "" {
		return Placeholder, nil
	}
	return reply, nil
}

// errorText returns the "error" field of a JSON error body, or the raw body
func errorText(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

// Reachable dials the endpoint host to check connectivity without sending a
// message. It is used to seed the online flag at startup.
func (c *Client) Reachable(ctx context.Context) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	dialer := &net.Dialer{Timeout: 3 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		return classify(ctx, err)
	}
	return conn.Close()
}

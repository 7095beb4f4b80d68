package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// HeaderRequestID correlates a request with server logs.
	HeaderRequestID = "X-Request-ID"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 16 << 20
)

// Ensure Client implements the interface.
var _ driven.ContentGateway = (*Client)(nil)

// Config configures the content API client.
type Config struct {
	// BaseURL is the API origin, e.g. http://localhost:5000.
	BaseURL string

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero uses DefaultRate.
	RatePerSecond int

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the remote content API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  driven.TokenProvider
	limiter *RateLimiter
	log     zerolog.Logger
}

// NewClient creates a client. tokens supplies the bearer token for
// authenticated requests and may be nil.
func NewClient(cfg Config, tokens driven.TokenProvider) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		limiter: NewRateLimiter(cfg.RatePerSecond),
		log:     logger.WithComponent("contentapi"),
	}
}

// BaseURL returns the API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do sends one request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, op, method, path string, body any, requiresAuth bool) ([]byte, error) {
	opName := method + " " + path
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.GatewayRequestDuration, op)

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, &domain.NetworkError{Op: opName, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	if requiresAuth && c.tokens != nil {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		if token != "" {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, "error").Inc()
		c.log.Debug().Err(err).Str("request_id", requestID).Str("op", opName).Msg("request failed")
		return nil, &domain.NetworkError{Op: opName, Err: err}
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)
	metrics.GatewayRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.NetworkError{Op: opName, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", opName).
		Int("status", resp.StatusCode).
		Dur("took", timer.Duration()).
		Msg("content api")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env) // Message is optional
		return nil, domain.NewHTTPError(resp.StatusCode, env.Message)
	}

	return data, nil
}

// hasData reports whether an envelope carried a usable data member.
// null, false, 0 and "" count as absent.
func hasData(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}

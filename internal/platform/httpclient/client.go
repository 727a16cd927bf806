// Package httpclient is the outbound HTTP client behind the remote todo
// store. Every call passes through, in order:
//
//	rate limiter → X-Request-ID / X-Correlation-ID → client span → retry → net/http
//
// It has no breaker of its own: the remote store sits behind the same
// datasource.Guarded breaker as the other drivers.
//
//	client := httpclient.New(&cfg.Store.Remote, "remote", metrics, logger)
//	req, err := client.NewRequest(ctx, http.MethodGet, "/api/todos", nil)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
)

// retryConfig copies config.RetryConfig so the retry loop does not depend
// on the config package.
type retryConfig struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// Client sends requests to one downstream service.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	limiter     *rate.Limiter // nil disables rate limiting
	retryCfg    retryConfig
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New builds a Client for cfg.BaseURL. serviceName labels the downstream in
// spans, metrics and logs. metrics and logger may be nil.
func New(cfg *config.RemoteConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: serviceName,
		retryCfg: retryConfig{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
	if rps := cfg.RateLimit.RequestsPerSecond; rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), cfg.RateLimit.BurstSize)
	}
	return c
}

// BaseURL is the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ServiceName labels the downstream in telemetry.
func (c *Client) ServiceName() string { return c.serviceName }

// NewRequest builds a request for path, which is resolved against the base
// URL. A nil body sends no body.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	return req, nil
}

// Do sends req through the client pipeline. GET and HEAD are retried;
// other methods are sent once.
//
// The caller closes resp.Body whenever resp is non-nil. That includes the
// case where every attempt ended in 429 or 5xx: the last response comes
// back together with a non-nil error. resp is nil when the limiter gave up
// or the transport failed.
func (c *Client) Do(ctx context.Context, req *http.Request) (resp *http.Response, err error) {
	start := time.Now()
	method := req.Method
	defer func() { c.recordMetrics(ctx, method, start, resp, err) }()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			c.logger.WarnContext(ctx, "outbound request dropped by rate limiter",
				slog.String("method", method),
				slog.String("peer_service", c.serviceName),
				slog.Any("error", werr),
			)
			return nil, fmt.Errorf("waiting for rate limiter: %w", werr)
		}
	}

	propagateIDs(ctx, req.Header)

	spanCtx, span := c.startSpan(ctx, req)
	defer func() { endSpan(span, resp, err) }()

	err = c.doWithRetry(spanCtx, req.WithContext(spanCtx), &resp)
	return resp, err
}

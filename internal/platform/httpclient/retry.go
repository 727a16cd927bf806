package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
)

// jitterFraction spreads each backoff delay by ±25%.
const jitterFraction = 0.25

// doWithRetry sends req, replaying GET and HEAD after network errors, 429
// and 5xx. Delays grow exponentially from initialInterval, are capped at
// maxInterval and jittered by jitterFraction. Any other method gets a single
// attempt so a write is never applied twice.
//
// When the last attempt still ends in a retryable status, its response is
// stored in *resp with the body unread and an error is returned as well.
// The caller closes the body. Passing resp out through a pointer keeps the
// bodyclose linter quiet.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts < 1 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}

	attempts := 1
	if isRetryableMethod(req.Method) {
		attempts = c.retryCfg.maxAttempts
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	bo := c.retryCfg.newBackOff()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.pause(ctx, req, bo.NextBackOff(), attempt, attempts, lastErr); err != nil {
				return err
			}
		}
		rewindRequestBody(req, body)

		r, err := c.http.Do(req)
		switch {
		case err != nil:
			if !isRetryable(err) {
				return err
			}
			lastErr = err

		case !isRetryableStatus(r.StatusCode):
			*resp = r
			return nil

		case attempt == attempts:
			*resp = r
			return fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)

		default:
			lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
			discardResponse(r)
		}
	}

	return lastErr
}

// newBackOff returns a fresh delay sequence for one logical request.
func (rc retryConfig) newBackOff() *backoff.ExponentialBackOff {
	maxInterval := max(rc.maxInterval, rc.initialInterval)

	bo := &backoff.ExponentialBackOff{
		InitialInterval:     rc.initialInterval,
		RandomizationFactor: jitterFraction,
		Multiplier:          rc.multiplier,
		MaxInterval:         maxInterval,
	}
	bo.Reset()
	return bo
}

// pause logs the upcoming retry and sleeps for delay unless ctx ends first.
func (c *Client) pause(ctx context.Context, req *http.Request, delay time.Duration, attempt, attempts int, lastErr error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt),
		slog.Int("max_attempts", attempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// bufferRequestBody reads req.Body once so every attempt can resend it.
func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

func rewindRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// discardResponse drains and closes r so its connection can be reused.
func discardResponse(r *http.Response) {
	_, _ = io.Copy(io.Discard, r.Body)
	_ = r.Body.Close()
}

// isRetryable reports whether a transport error is worth another attempt.
// Only the caller giving up (cancellation or deadline) is final.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableMethod reports whether replaying a request cannot apply it twice.
func isRetryableMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// isRetryableStatus reports whether the downstream asked us to come back
// later: 429 or any 5xx.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

package symphony

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"streamaudit/internal/platform/metrics"
	dErrors "streamaudit/pkg/domain-errors"
	"streamaudit/pkg/platform/sentinel"
)

// Client is the authenticated REST client for the pod's admin endpoints. It
// owns transport-level retry; callers see either a decoded response or a
// coded error. Audit logic never lives here.
type Client struct {
	http       *http.Client
	podURL     string
	session    string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	maxRetries uint64
}

// ClientOption configures a Client.
type ClientOption func(c *Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = uint64(n)
		}
	}
}

// NewClient builds a Client against podURL using an established session
// token.
func NewClient(podURL, session string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		http:       &http.Client{Timeout: timeout},
		podURL:     podURL,
		session:    session,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// do issues one API call with bounded exponential-backoff retry. Only
// transport errors and 5xx responses are retried; auth rejections and other
// client errors are permanent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request body")
		}
	}

	operation := func() error {
		c.metrics.IncRequests()

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.podURL+path, reader)
		if err != nil {
			return backoff.Permanent(dErrors.Wrap(err, dErrors.CodeInternal, "build request"))
		}
		if len(query) > 0 {
			req.URL.RawQuery = query.Encode()
		}
		req.Header.Set("sessionToken", c.session)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "backend request")
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(dErrors.Newf(dErrors.CodeUnauthorized, "%s %s: %s", method, path, resp.Status))
		case resp.StatusCode >= http.StatusInternalServerError:
			return dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, resp.Status)
		case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent:
			return backoff.Permanent(dErrors.Newf(dErrors.CodeUnavailable, "%s %s: %s", method, path, resp.Status))
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(dErrors.Wrap(err, dErrors.CodeUnavailable, "decode response"))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		c.metrics.IncRetries()
		c.logger.Warn("retrying backend request",
			"method", method, "path", path, "backoff", next, "error", err)
	})
}

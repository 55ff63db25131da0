package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type requestOptions struct {
	headers http.Header
	timeout time.Duration
	retries int
}

// Option adjusts a single FetchText call.
type Option func(*requestOptions)

func WithHeader(key, value string) Option {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

// WithRetries overrides the client's transient-error retry budget.
func WithRetries(n int) Option {
	return func(o *requestOptions) {
		if n < 0 {
			n = 0
		}
		o.retries = n
	}
}

// FetchText GETs url and returns the body of a 200 response as text.
// Connection resets and timeouts are retried immediately until the retry
// budget is used up; every other failure is returned as is.
func (c *Client) FetchText(ctx context.Context, url string, opts ...Option) (string, error) {
	o := requestOptions{
		headers: make(http.Header),
		timeout: c.pageTimeout,
		retries: c.retries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	for attempt := 1; ; attempt++ {
		var body string
		body, err = c.fetchOnce(ctx, url, &o)
		if err == nil {
			return body, nil
		}
		if !IsTransient(err) || ctx.Err() != nil {
			return "", err
		}
		if o.retries == 0 {
			return "", &TransientNetworkError{URL: url, Attempts: attempt, Err: err}
		}
		o.retries--

		c.logger.WithFields(logrus.Fields{
			"url":       url,
			"attempt":   attempt,
			"remaining": o.retries,
			"err":       err,
		}).Debug("retrying page fetch")
	}
}

func (c *Client) fetchOnce(ctx context.Context, url string, o *requestOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build request for \"%s\"", url)
	}
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", acceptLanguage)
	for key, values := range o.headers {
		req.Header[key] = values
	}

	resp, err := c.pageClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "error while getting resource \"%s\"", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read body from \"%s\"", url)
	}
	return string(b), nil
}

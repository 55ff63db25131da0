package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// HTTPStatusError is returned when a server answers with anything but 200.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("server responded \"%s\" with status: %d", e.URL, e.StatusCode)
}

// TransientNetworkError is returned once the retry budget for connection
// resets and timeouts is used up.
type TransientNetworkError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("failed to fetch \"%s\" after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransientNetworkError) Unwrap() error { return e.Err }

type DownloadTimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *DownloadTimeoutError) Error() string {
	return fmt.Sprintf("download of \"%s\" did not finish within %s", e.URL, e.Timeout)
}

// ParseError reports a page that lacks the structure a parser expects.
type ParseError struct {
	URL  string
	What string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected page structure at \"%s\": %s", e.URL, e.What)
}

// IsTransient reports whether err is a connection reset or a timeout. A
// connection closed before or during the response counts as a reset.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if isDisconnectedError(err) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

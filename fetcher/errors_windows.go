package fetcher

import (
	"syscall"

	"github.com/pkg/errors"
)

func isDisconnectedError(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	if errno == syscall.WSAECONNABORTED || errno == syscall.WSAECONNRESET {
		return true
	}

	return false
}

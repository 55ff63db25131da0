//go:build !windows
// +build !windows

package fetcher

import (
	"syscall"

	"github.com/pkg/errors"
)

func isDisconnectedError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, syscall.ECONNRESET)
}

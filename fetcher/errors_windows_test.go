package fetcher

import (
	"net"
	"os"
	"syscall"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(DisconnectTestSuite))

type DisconnectTestSuite struct{}

func (s *DisconnectTestSuite) TestAbortedAndResetConnections(c *check.C) {
	wrap := func(errno syscall.Errno) error {
		return &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("wsarecv", errno)}
	}
	c.Assert(IsTransient(wrap(syscall.WSAECONNRESET)), check.Equals, true)
	c.Assert(IsTransient(wrap(syscall.WSAECONNABORTED)), check.Equals, true)
	c.Assert(IsTransient(wrap(syscall.WSAEACCES)), check.Equals, false)
}

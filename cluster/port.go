package cluster

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	u "github.com/araddon/gou"
)

// IsPortFree tries to bind 127.0.0.1:port.  A port we could not bind
// for any reason is reported as not free; only address-in-use is
// silent, every other failure is logged.
func IsPortFree(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		if !errors.Is(err, syscall.EADDRINUSE) {
			u.Warnf("could not check port %d: %v", port, err)
		}
		return false
	}
	l.Close()
	return true
}

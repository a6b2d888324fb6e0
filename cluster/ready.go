package cluster

import (
	"context"
	"net"
	"time"

	u "github.com/araddon/gou"
	"github.com/siderolabs/go-retry/retry"
)

const (
	// DefaultReadyTimeout how long to wait for a process to accept connections
	DefaultReadyTimeout = 10 * time.Second
	// ReadyInterval between readiness attempts
	ReadyInterval = 100 * time.Millisecond
)

// WaitForPort polls a tcp dial to addr until it is accepted or timeout
// elapses.
func WaitForPort(ctx context.Context, addr string, timeout time.Duration) error {
	return Poll(ctx, timeout, func(ctx context.Context) error {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	})
}

// Poll runs check at ReadyInterval until it returns nil or timeout
// elapses; the last check error is returned on timeout.
func Poll(ctx context.Context, timeout time.Duration, check func(ctx context.Context) error) error {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	attempt := 0
	return retry.Constant(timeout, retry.WithUnits(ReadyInterval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			attempt++
			if err := check(ctx); err != nil {
				u.Debugf("not ready (attempt %d): %v", attempt, err)
				return retry.ExpectedError(err)
			}
			return nil
		})
}

// Package bridge defines the control connection to the orchestrator
// process.  The wire protocol lives behind the Client interface; this
// package only names the calls the session makes and the handles they
// return.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/frame"
	"github.com/blazingdb/blazingsql/schema"
)

var (
	_ = u.EMPTY

	// ErrBadConnection the connection string is not host:port
	ErrBadConnection = errors.New("connection must be host:port")
	// ErrEmptyResult a distributed result with no parts
	ErrEmptyResult = errors.New("distributed result has no parts")
)

// Client is an open control connection to the orchestrator.
type Client interface {
	// CreateTable registers a table; an error means the engine did not
	// accept the registration.
	CreateTable(ctx context.Context, reg *schema.TableRegistration) error
	DropTable(ctx context.Context, name string) error
	RunQuery(ctx context.Context, sql string) (*ResultSet, error)
	// RunDistributedQuery runs sql across every worker of the cluster,
	// leaving each worker's part of the result on that worker.
	RunDistributedQuery(ctx context.Context, sql string) (*DistributedResult, error)
	// Ping is the trivial request used as a readiness check
	Ping(ctx context.Context) error
	Close() error
}

// Dialer opens control connections
type Dialer interface {
	Dial(ctx context.Context, host string, port int) (Client, error)
}

// DialerFunc adapts a function to a Dialer
type DialerFunc func(ctx context.Context, host string, port int) (Client, error)

func (f DialerFunc) Dial(ctx context.Context, host string, port int) (Client, error) {
	return f(ctx, host, port)
}

// ResultSet is a handle to a computed result whose columns are
// already device resident.
type ResultSet struct {
	Token   int64
	Columns *frame.Table
}

// ResultPart is the piece of a distributed result held by one worker
type ResultPart struct {
	Worker      string
	ResultToken int64
}

// DistributedResult is a result spread across the cluster's workers.
type DistributedResult struct {
	Parts []ResultPart
}

// Token the engine uses to find the whole distributed result, which is
// the token of its first part.
func (m *DistributedResult) Token() (int64, error) {
	if m == nil || len(m.Parts) == 0 {
		return 0, ErrEmptyResult
	}
	return m.Parts[0].ResultToken, nil
}

// ParseConnection splits a "host:port" connection string.  There is no
// scheme, so it is parsed as a network path reference "//host:port".
func ParseConnection(conn string) (string, int, error) {
	uri, err := url.Parse("//" + conn)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %v", ErrBadConnection, conn, err)
	}
	host, portStr := uri.Hostname(), uri.Port()
	if host == "" || portStr == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrBadConnection, conn)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: bad port in %q", ErrBadConnection, conn)
	}
	return host, port, nil
}

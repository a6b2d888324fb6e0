// Package mockbridge is an in-memory control connection that stands in
// for the orchestrator in tests and the example client.  Registrations
// go into a schema.Catalog, queries return empty results.
package mockbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/bridge"
	"github.com/blazingdb/blazingsql/schema"
)

var (
	_ = u.EMPTY

	// Enforce the control connection interface
	_ bridge.Client = (*Client)(nil)
	_ bridge.Dialer = (*Dialer)(nil)

	// ErrNotReady returned from Ping while the fake orchestrator is "starting"
	ErrNotReady = errors.New("orchestrator not ready")
	// ErrClosed the connection was closed
	ErrClosed = errors.New("connection closed")

	// Global is the dialer registered as "mock"
	Global = NewDialer()
)

func init() {
	bridge.Register("mock", Global)
}

// Dialer hands out Clients that all share one backend catalog, the way
// every connection to one orchestrator sees the same tables.
type Dialer struct {
	// PingFailures is how many Pings fail before the backend is ready
	PingFailures int32
	// DialErr if set, every Dial fails with it
	DialErr error

	mu      sync.Mutex
	Dialed  []string
	backend *Backend
}

// NewDialer creates a dialer with a fresh backend
func NewDialer() *Dialer {
	return &Dialer{backend: NewBackend()}
}

// Backend the dialer's shared state
func (m *Dialer) Backend() *Backend { return m.backend }

// Dial implements bridge.Dialer
func (m *Dialer) Dial(ctx context.Context, host string, port int) (bridge.Client, error) {
	m.mu.Lock()
	m.Dialed = append(m.Dialed, fmt.Sprintf("%s:%d", host, port))
	m.mu.Unlock()
	if m.DialErr != nil {
		return nil, m.DialErr
	}
	return &Client{backend: m.backend, pingFailures: atomic.LoadInt32(&m.PingFailures)}, nil
}

// Backend is the fake engine state
type Backend struct {
	// CreateErr if set, CreateTable fails with it
	CreateErr error

	catalog *schema.Catalog
	token   int64
	pings   int32
}

// NewBackend creates an empty backend
func NewBackend() *Backend {
	c, err := schema.NewCatalog()
	if err != nil {
		panic(err)
	}
	return &Backend{catalog: c}
}

// Catalog of tables registered with this backend
func (m *Backend) Catalog() *schema.Catalog { return m.catalog }

// Pings is how many Ping calls reached the backend
func (m *Backend) Pings() int { return int(atomic.LoadInt32(&m.pings)) }

// Client is one control connection
type Client struct {
	backend      *Backend
	pingFailures int32
	closed       int32
}

// CreateTable implements bridge.Client
func (m *Client) CreateTable(ctx context.Context, reg *schema.TableRegistration) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	if m.backend.CreateErr != nil {
		return m.backend.CreateErr
	}
	u.Debugf("mockbridge create table %v", reg)
	return m.backend.catalog.Put(reg)
}

// DropTable implements bridge.Client
func (m *Client) DropTable(ctx context.Context, name string) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	return m.backend.catalog.Delete(name)
}

// RunQuery implements bridge.Client
func (m *Client) RunQuery(ctx context.Context, sql string) (*bridge.ResultSet, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	u.Debugf("mockbridge run %q", sql)
	return &bridge.ResultSet{Token: atomic.AddInt64(&m.backend.token, 1)}, nil
}

// RunDistributedQuery implements bridge.Client, one part per query
func (m *Client) RunDistributedQuery(ctx context.Context, sql string) (*bridge.DistributedResult, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	tok := atomic.AddInt64(&m.backend.token, 1)
	return &bridge.DistributedResult{Parts: []bridge.ResultPart{{Worker: "mock-0", ResultToken: tok}}}, nil
}

// Ping implements bridge.Client
func (m *Client) Ping(ctx context.Context) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	atomic.AddInt32(&m.backend.pings, 1)
	if atomic.AddInt32(&m.pingFailures, -1) >= 0 {
		return ErrNotReady
	}
	return nil
}

// Close implements bridge.Client
func (m *Client) Close() error {
	atomic.StoreInt32(&m.closed, 1)
	return nil
}

// Closed is true once Close was called
func (m *Client) Closed() bool { return atomic.LoadInt32(&m.closed) == 1 }

func (m *Client) check(ctx context.Context) error {
	if atomic.LoadInt32(&m.closed) == 1 {
		return ErrClosed
	}
	return ctx.Err()
}

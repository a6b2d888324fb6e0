package blazingsql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	u "github.com/araddon/gou"
	"github.com/pborman/uuid"

	"github.com/blazingdb/blazingsql/bridge"
	"github.com/blazingdb/blazingsql/cluster"
	"github.com/blazingdb/blazingsql/datasource"
	"github.com/blazingdb/blazingsql/schema"
)

var (
	_ = u.EMPTY

	// ErrClosed the session was closed
	ErrClosed = errors.New("session is closed")
	// ErrNotDistributed distributed queries need a worker pool
	ErrNotDistributed = errors.New("session has no worker pool")
)

// Supervisor starts the cluster processes, cluster.Supervisor is the
// local implementation.
type Supervisor interface {
	EnsureOrchestrator(ctx context.Context) (*cluster.ManagedProcess, error)
	EnsureComputeEngine(ctx context.Context, iface string) (*cluster.ManagedProcess, error)
	EnsureQueryPlanner(ctx context.Context) (*cluster.ManagedProcess, error)
	DistributeComputeEngine(ctx context.Context, pool cluster.WorkerPool, iface string) error
}

var _ Supervisor = (*cluster.Supervisor)(nil)

// Option customizes Open
type Option func(*Context)

// WithWorkerPool attaches an external worker pool; the compute engine is
// then started on every worker instead of locally.
func WithWorkerPool(pool cluster.WorkerPool) Option {
	return func(m *Context) { m.pool = pool }
}

// WithDialer overrides the dialer found by Config.Bridge
func WithDialer(d bridge.Dialer) Option {
	return func(m *Context) { m.dialer = d }
}

// WithSupervisor overrides the process supervisor
func WithSupervisor(s Supervisor) Option {
	return func(m *Context) { m.supervisor = s }
}

// WithPortWaiter overrides how Open waits for a freshly started
// orchestrator to listen.
func WithPortWaiter(wait func(ctx context.Context, addr string, timeout time.Duration) error) Option {
	return func(m *Context) { m.waitForPort = wait }
}

// Context is a session against one cluster.  It owns the processes it
// started (unless told to leave them running) and the control
// connection, both released by Close.
type Context struct {
	id         string
	conf       Config
	host       string
	port       int
	client     bridge.Client
	pool       cluster.WorkerPool
	dialer     bridge.Dialer
	supervisor Supervisor
	catalog    *schema.Catalog

	waitForPort func(ctx context.Context, addr string, timeout time.Duration) error

	mu     sync.Mutex
	procs  []*cluster.ManagedProcess
	track  bool
	closed bool
}

// Open bootstraps the cluster and connects to the orchestrator.  With a
// nil conf DefaultConfig is used.
//
// Without a worker pool the orchestrator, engine and planner are each
// started here if asked for and not already running.  With one, the
// engine is started on every worker of the pool instead.  Processes
// that fail to start are only logged; that shows up when the connection
// or a later registration fails.
func Open(ctx context.Context, conf *Config, opts ...Option) (*Context, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	m := &Context{
		id:          uuid.New(),
		conf:        *conf,
		track:       !conf.LeaveProcessesRunning,
		waitForPort: cluster.WaitForPort,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.supervisor == nil {
		m.supervisor = cluster.NewSupervisor()
	}
	if m.dialer == nil {
		d, err := bridge.Get(conf.Bridge)
		if err != nil {
			return nil, err
		}
		m.dialer = d
	}
	catalog, err := schema.NewCatalog()
	if err != nil {
		return nil, err
	}
	m.catalog = catalog

	if err := m.bootstrap(ctx); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.connect(ctx); err != nil {
		m.Close()
		return nil, err
	}
	u.Infof("session %s connected to %s", m.id, m.conf.Connection)
	return m, nil
}

func (m *Context) bootstrap(ctx context.Context) error {
	if m.conf.RunOrchestrator {
		p := m.own(m.supervisor.EnsureOrchestrator(ctx))
		if p != nil {
			addr := net.JoinHostPort(cluster.Loopback, strconv.Itoa(cluster.OrchestratorPort))
			if err := m.waitForPort(ctx, addr, m.conf.ReadyTimeout); err != nil {
				u.Warnf("orchestrator not listening on %s: %v", addr, err)
			}
		}
	}
	if m.pool != nil {
		if err := m.supervisor.DistributeComputeEngine(ctx, m.pool, m.conf.NetworkInterface); err != nil {
			return fmt.Errorf("start compute engine on workers: %w", err)
		}
	} else if m.conf.RunEngine {
		m.own(m.supervisor.EnsureComputeEngine(ctx, m.conf.NetworkInterface))
	}
	if m.conf.RunAlgebra {
		m.own(m.supervisor.EnsureQueryPlanner(ctx))
	}
	return ctx.Err()
}

// own records a process this session started, unless in leave running
// mode.  Spawn errors are logged and swallowed.
func (m *Context) own(p *cluster.ManagedProcess, err error) *cluster.ManagedProcess {
	if err != nil {
		u.Warnf("session %s: %v", m.id, err)
		return nil
	}
	if p != nil && m.track {
		m.mu.Lock()
		m.procs = append(m.procs, p)
		m.mu.Unlock()
	}
	return p
}

func (m *Context) connect(ctx context.Context) error {
	host, port, err := bridge.ParseConnection(m.conf.Connection)
	if err != nil {
		return err
	}
	m.host, m.port = host, port
	client, err := m.dialer.Dial(ctx, host, port)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", m.conf.Connection, err)
	}
	m.client = client
	if err := cluster.Poll(ctx, m.conf.ReadyTimeout, client.Ping); err != nil {
		return fmt.Errorf("orchestrator at %s not ready: %w", m.conf.Connection, err)
	}
	return nil
}

// Close terminates the processes this session owns and closes the
// control connection.  It never fails and may be called more than once.
func (m *Context) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	procs := m.procs
	m.procs = nil
	m.mu.Unlock()

	cluster.TerminateAll(procs)
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			u.Debugf("session %s close connection: %v", m.id, err)
		}
	}
	return nil
}

// ID of this session
func (m *Context) ID() string { return m.id }

// Processes this session owns
func (m *Context) Processes() []*cluster.ManagedProcess {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*cluster.ManagedProcess(nil), m.procs...)
}

func (m *Context) String() string { return m.conf.Connection }

func (m *Context) conn() (bridge.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	return m.client, nil
}

// CreateTable resolves input into a DataSource and registers it with
// the engine as table name.  opts are the create table keyword options:
// file_format, lines and the csv / orc args.
func (m *Context) CreateTable(ctx context.Context, name string, input interface{}, opts u.JsonHelper) (*datasource.DataSource, error) {
	client, err := m.conn()
	if err != nil {
		return nil, err
	}
	ds, err := datasource.Resolve(name, input, opts)
	if err != nil {
		return nil, err
	}
	if err := ds.Register(ctx, client); err != nil {
		return ds, err
	}
	if err := m.catalog.Put(ds.Registration()); err != nil {
		return ds, err
	}
	return ds, nil
}

// DropTable removes table name from the engine
func (m *Context) DropTable(ctx context.Context, name string) error {
	client, err := m.conn()
	if err != nil {
		return err
	}
	if err := client.DropTable(ctx, name); err != nil {
		return err
	}
	if err := m.catalog.Delete(name); err != nil {
		u.Debugf("drop table %q not in session catalog: %v", name, err)
	}
	return nil
}

// SQL runs a query.  The table list is no longer used, tables are
// whatever has been created in this session.
func (m *Context) SQL(ctx context.Context, sql string, tables ...string) (*bridge.ResultSet, error) {
	if len(tables) > 0 {
		u.Warnf("the table list argument of SQL is deprecated and ignored: %v", tables)
	}
	client, err := m.conn()
	if err != nil {
		return nil, err
	}
	return client.RunQuery(ctx, sql)
}

// SQLDistributed runs a query across the worker pool, leaving the parts
// of the result on the workers.
func (m *Context) SQLDistributed(ctx context.Context, sql string) (*bridge.DistributedResult, error) {
	if m.pool == nil {
		return nil, ErrNotDistributed
	}
	client, err := m.conn()
	if err != nil {
		return nil, err
	}
	return client.RunDistributedQuery(ctx, sql)
}

// Tables created in this session, sorted
func (m *Context) Tables() []string { return m.catalog.Names() }

// Table registration of a table created in this session
func (m *Context) Table(name string) (*schema.TableRegistration, error) {
	return m.catalog.Get(name)
}

// Package cluster starts, finds and stops the three processes a
// blazingsql cluster is made of: the compute engine, the query planner
// and the orchestrator that wires them together.
package cluster

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	u "github.com/araddon/gou"
)

// Fixed ports of the cluster processes
const (
	EnginePort       = 9100
	DataExchangePort = 9001
	MetricsPort      = 8891
	PlannerPort      = 8890
	OrchestratorPort = 8889

	Loopback = "127.0.0.1"
)

// Binaries and install locations
var (
	EngineBinary       = "blazingsql-engine"
	OrchestratorBinary = "blazingsql-orchestrator"
	JavaBinary         = "java"
	PlannerJar         = "blazingsql-algebra.jar"
	DefaultJarDir      = "/usr/local/lib"
	// PrefixEnv names the install prefix, the planner jar is under <prefix>/lib
	PrefixEnv = "CONDA_PREFIX"
)

// Supervisor ensures the cluster processes are running on this host.
// A port it has spawned a process for counts as taken until that
// process is terminated, so concurrent ensures of one role start it
// once even before the new process binds its port.
type Supervisor struct {
	Spawner Spawner
	// PortFree defaults to IsPortFree
	PortFree func(port int) bool
	// Getenv defaults to os.Getenv
	Getenv func(key string) string

	mu      sync.Mutex
	started map[int]*ManagedProcess
}

// NewSupervisor creates a Supervisor spawning with os/exec
func NewSupervisor() *Supervisor {
	return &Supervisor{Spawner: &ExecSpawner{}, PortFree: IsPortFree, Getenv: os.Getenv}
}

// EngineArgs argument vector of the compute engine, node 0 of 1
func EngineArgs(iface string) []string {
	return []string{
		EngineBinary, "1", "0",
		Loopback, strconv.Itoa(EnginePort),
		Loopback, strconv.Itoa(DataExchangePort),
		strconv.Itoa(MetricsPort),
		iface,
	}
}

// OrchestratorArgs argument vector of the orchestrator
func OrchestratorArgs() []string {
	return []string{
		OrchestratorBinary,
		strconv.Itoa(EnginePort), strconv.Itoa(OrchestratorPort),
		Loopback, strconv.Itoa(PlannerPort),
	}
}

// PlannerArgs argument vector of the query planner
func (m *Supervisor) PlannerArgs() []string {
	return []string{JavaBinary, "-jar", m.jarPath(), "-p", strconv.Itoa(PlannerPort)}
}

func (m *Supervisor) jarPath() string {
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if prefix := getenv(PrefixEnv); prefix != "" {
		return filepath.Join(prefix, "lib", PlannerJar)
	}
	return filepath.Join(DefaultJarDir, PlannerJar)
}

// EnsureOrchestrator spawns the orchestrator unless its port is taken.
// A nil process and nil error mean it was probably already running.
func (m *Supervisor) EnsureOrchestrator(ctx context.Context) (*ManagedProcess, error) {
	return m.ensure(ctx, RoleOrchestrator, OrchestratorPort, OrchestratorArgs())
}

// EnsureComputeEngine spawns the compute engine unless its control port
// is taken.  iface is the network interface used for data exchange.
func (m *Supervisor) EnsureComputeEngine(ctx context.Context, iface string) (*ManagedProcess, error) {
	return m.ensure(ctx, RoleEngine, EnginePort, EngineArgs(iface))
}

// EnsureQueryPlanner spawns the planner jvm unless its port is taken.
func (m *Supervisor) EnsureQueryPlanner(ctx context.Context) (*ManagedProcess, error) {
	return m.ensure(ctx, RolePlanner, PlannerPort, m.PlannerArgs())
}

func (m *Supervisor) ensure(ctx context.Context, role Role, port int, argv []string) (*ManagedProcess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.started[port]; ok {
		u.Infof("%s already started as %s", role, p)
		return nil, nil
	}
	portFree := m.PortFree
	if portFree == nil {
		portFree = IsPortFree
	}
	if !portFree(port) {
		u.Infof("port %d in use, %s probably already running", port, role)
		return nil, nil
	}
	spawner := m.Spawner
	if spawner == nil {
		spawner = &ExecSpawner{}
	}
	p, err := spawner.Spawn(ctx, argv)
	if err != nil {
		return nil, err
	}
	mp := &ManagedProcess{Role: role, Argv: argv, Process: p}
	mp.release = func() { m.release(port, mp) }
	if m.started == nil {
		m.started = make(map[int]*ManagedProcess)
	}
	m.started[port] = mp
	u.Infof("started %s", mp)
	return mp, nil
}

func (m *Supervisor) release(port int, mp *ManagedProcess) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started[port] == mp {
		delete(m.started, port)
	}
}

// DistributeComputeEngine starts the compute engine on every worker of
// pool instead of locally, blocking until every worker has tried.  What
// happened on an individual worker is logged only; the returned error
// is the pool's own (a cancelled context).  Processes started on the
// workers are not owned by the caller.
func (m *Supervisor) DistributeComputeEngine(ctx context.Context, pool WorkerPool, iface string) error {
	err := pool.Broadcast(ctx, func(ctx context.Context) error {
		p, err := m.EnsureComputeEngine(ctx, iface)
		if err != nil {
			u.Warnf("compute engine on worker: %v", err)
			return nil
		}
		if p != nil {
			u.Debugf("compute engine on worker %s", p)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

// TerminateAll signals every process, skipping nils.  Errors are
// ignored and exits are not awaited.
func TerminateAll(procs []*ManagedProcess) {
	for _, p := range procs {
		if p == nil {
			continue
		}
		if err := p.Terminate(); err != nil {
			u.Debugf("terminate %s: %v", p, err)
		}
	}
}

package cluster

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	u "github.com/araddon/gou"
)

// Role of a cluster process.
// DO NOT CHANGE the numbers, do not use iota
type Role uint8

const (
	RoleEngine       Role = 1
	RolePlanner      Role = 2
	RoleOrchestrator Role = 3
)

func (m Role) String() string {
	switch m {
	case RoleEngine:
		return "engine"
	case RolePlanner:
		return "planner"
	case RoleOrchestrator:
		return "orchestrator"
	}
	return fmt.Sprintf("role(%d)", uint8(m))
}

// Process is a running OS process we may signal.
type Process interface {
	Pid() int
	// Terminate asks the process to exit (SIGTERM) without waiting
	Terminate() error
}

// Spawner starts processes.
type Spawner interface {
	Spawn(ctx context.Context, argv []string) (Process, error)
}

// SpawnerFunc adapts a function to a Spawner
type SpawnerFunc func(ctx context.Context, argv []string) (Process, error)

func (f SpawnerFunc) Spawn(ctx context.Context, argv []string) (Process, error) {
	return f(ctx, argv)
}

// ManagedProcess is a spawned process and the role it plays.  Whoever
// holds it owns it.
type ManagedProcess struct {
	Role    Role
	Argv    []string
	Process Process

	release func()
}

func (m *ManagedProcess) String() string {
	if m == nil || m.Process == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[pid=%d]", m.Role, m.Process.Pid())
}

// Terminate signals the process and does not wait for it to exit.
func (m *ManagedProcess) Terminate() error {
	if m == nil || m.Process == nil {
		return nil
	}
	if m.release != nil {
		m.release()
	}
	return m.Process.Terminate()
}

// ExecSpawner starts processes with os/exec.  The processes are not
// bound to the spawn context, they outlive the call that started them.
type ExecSpawner struct {
	// Env extra KEY=VALUE entries added to the child environment
	Env []string
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (m *execProcess) Pid() int         { return m.cmd.Process.Pid }
func (m *execProcess) Terminate() error { return m.cmd.Process.Signal(syscall.SIGTERM) }

func (m *execProcess) reap() {
	m.err = m.cmd.Wait()
	close(m.done)
}

// Spawn implements Spawner
func (m *ExecSpawner) Spawn(ctx context.Context, argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("spawn: empty argument vector")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(m.Env) > 0 {
		cmd.Env = append(os.Environ(), m.Env...)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	u.Debugf("spawned pid=%d %v", cmd.Process.Pid, argv)
	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	// reap in the background so exited children do not linger
	go p.reap()
	return p, nil
}

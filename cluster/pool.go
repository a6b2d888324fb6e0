package cluster

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	minConcurrency    = 2
	maxConcurrencyCap = 8
)

// Task runs once on a worker
type Task func(ctx context.Context) error

// WorkerPool is an external pool of workers the compute engine can be
// started on.
type WorkerPool interface {
	// Workers names every worker of the pool
	Workers() []string
	// Broadcast runs task on every worker and blocks until all are done.
	Broadcast(ctx context.Context, task Task) error
}

// LocalPool is a WorkerPool of in-process logical workers.  Every
// worker runs its task in this process on this host, so it stands in
// for a remote pool in tests; it does not spread processes over hosts.
type LocalPool struct {
	workers        []string
	maxConcurrency int64
}

var _ WorkerPool = (*LocalPool)(nil)

// NewLocalPool creates a pool of n workers.  maxConcurrency <= 0 means
// one per cpu, capped.
func NewLocalPool(n int, maxConcurrency int64) *LocalPool {
	if maxConcurrency <= 0 {
		maxConcurrency = min(max(int64(runtime.NumCPU()), minConcurrency), maxConcurrencyCap)
	}
	workers := make([]string, n)
	for i := range workers {
		workers[i] = fmt.Sprintf("local-%d", i)
	}
	return &LocalPool{workers: workers, maxConcurrency: maxConcurrency}
}

// Workers implements WorkerPool
func (m *LocalPool) Workers() []string { return m.workers }

// Broadcast implements WorkerPool.  The first task error cancels the
// rest and is returned.
func (m *LocalPool) Broadcast(ctx context.Context, task Task) error {
	sem := semaphore.NewWeighted(m.maxConcurrency)
	g, gctx := errgroup.WithContext(ctx)
	for range m.workers {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return fmt.Errorf("acquire worker: %w", err)
			}
			defer sem.Release(1)
			return task(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	return nil
}

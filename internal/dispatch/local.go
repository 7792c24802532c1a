package dispatch

import (
	"context"
	"sync"

	"github.com/torcrun/torc/internal/domain"
)

// TestRunner executes a single TestCase and reports its outcome. It is
// the stand-in for the real worker process, treated here as an external
// collaborator.
type TestRunner interface {
	// RunTest executes tc. err is non-nil only for a worker-level
	// failure (e.g. the worker process itself crashed); an ordinary test
	// failure is reported through attempt.Status/attempt.Error instead.
	RunTest(ctx context.Context, tc *domain.TestCase) (attempt domain.Attempt, err error)
}

// LocalDispatcher runs each TestGroup's tests sequentially (general and
// parallelWithHooks groups need this for beforeEach/afterEach and
// amortized-hook ordering) while running up to MaxWorkers groups
// concurrently, using a buffered-channel semaphore plus a WaitGroup.
type LocalDispatcher struct {
	Groups     []*domain.TestGroup
	Sink       TestSink
	Runner     TestRunner
	MaxWorkers int

	mu          sync.Mutex
	workerError bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLocalDispatcher returns a Factory binding runner and maxWorkers,
// suitable for orchestrator.Options.Dispatch.
func NewLocalDispatcher(runner TestRunner, maxWorkers int) Factory {
	return func(groups []*domain.TestGroup, sink TestSink) Dispatcher {
		return &LocalDispatcher{Groups: groups, Sink: sink, Runner: runner, MaxWorkers: maxWorkers}
	}
}

// Run dispatches every group to a worker slot, blocking until all
// groups finish or ctx is cancelled.
func (d *LocalDispatcher) Run(ctx context.Context) error {
	if len(d.Groups) == 0 {
		return nil
	}
	workers := d.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	defer cancel()

	sem := make(chan struct{}, workers)
	for _, g := range d.Groups {
		select {
		case <-ctx.Done():
			return nil
		case sem <- struct{}{}:
		}
		d.wg.Add(1)
		go func(group *domain.TestGroup) {
			defer d.wg.Done()
			defer func() { <-sem }()
			d.runGroup(ctx, group)
		}(g)
	}
	d.wg.Wait()
	return nil
}

// runGroup executes a group's tests in order, on a single logical
// worker, so general and parallelWithHooks tests observe correct
// beforeEach/afterEach and shared-hook semantics.
func (d *LocalDispatcher) runGroup(ctx context.Context, group *domain.TestGroup) {
	for _, tc := range group.Tests {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.Sink.OnTestBegin(tc)
		attempt, err := d.Runner.RunTest(ctx, tc)
		if err != nil {
			d.mu.Lock()
			d.workerError = true
			d.mu.Unlock()
		}
		tc.RecordAttempt(attempt)
		d.Sink.OnTestEnd(tc, attempt)
	}
}

// Stop cancels in-flight work and waits for it to drain.
func (d *LocalDispatcher) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return nil
}

// HasWorkerErrors reports whether any group saw a worker-level failure.
func (d *LocalDispatcher) HasWorkerErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.workerError
}

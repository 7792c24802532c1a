// Package dispatch defines the Dispatcher interface a real worker-process
// pool implements as an external collaborator, and ships one concrete,
// in-process LocalDispatcher so `torc run` is runnable without a separate
// worker binary.
package dispatch

import (
	"context"

	"github.com/torcrun/torc/internal/domain"
)

// TestSink receives per-attempt lifecycle notifications, the same shape
// the reporter multiplexer ultimately forwards to configured reporters.
type TestSink interface {
	OnTestBegin(tc *domain.TestCase)
	OnTestEnd(tc *domain.TestCase, attempt domain.Attempt)
}

// Dispatcher runs one stage's groups to completion, or until stopped.
type Dispatcher interface {
	// Run executes every group and blocks until all have finished or ctx
	// is cancelled.
	Run(ctx context.Context) error
	// Stop requests an orderly drain of in-flight work; Run returns once
	// drained.
	Stop(ctx context.Context) error
	// HasWorkerErrors reports whether a worker process itself failed
	// (crashed, failed to start), as distinct from an ordinary test
	// failure.
	HasWorkerErrors() bool
}

// Factory builds a Dispatcher for one stage's groups.
type Factory func(groups []*domain.TestGroup, sink TestSink) Dispatcher

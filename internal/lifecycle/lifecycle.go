// Package lifecycle sequences plugin and global setup/teardown around a
// run: plugins then global setup before dispatch, then
// unconditional reverse teardown on every exit path.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/torcrun/torc/internal/signalwatch"
)

// Plugin is a built-in or config-registered collaborator (web servers,
// container runtimes) providing setup/teardown hooks.
type Plugin interface {
	Name() string
	Setup(ctx context.Context) error
	Teardown(ctx context.Context) error
}

// ErrInterrupted is returned by Setup when a signal arrives mid-setup.
var ErrInterrupted = errors.New("lifecycle: interrupted during setup")

// TeardownFunc is what a GlobalSetup hook may return: a function invoked
// during teardown before GlobalTeardown.
type TeardownFunc func(ctx context.Context) error

// Lifecycle wires the plugin list and the user global setup/teardown
// hooks. The zero value is a no-op lifecycle.
type Lifecycle struct {
	Plugins        []Plugin
	GlobalSetup    func(ctx context.Context) (TeardownFunc, error)
	GlobalTeardown func(ctx context.Context) error

	setupPlugins    []Plugin
	setupTeardownFn TeardownFunc
}

// Setup runs each plugin's Setup in order, racing it against watcher so
// an interrupt mid-setup surfaces promptly; plugins that completed setup
// are recorded so Teardown can still visit them in reverse. After
// plugins, GlobalSetup runs and its returned TeardownFunc (if any) is
// captured for Teardown.
func (l *Lifecycle) Setup(ctx context.Context, watcher *signalwatch.Watcher) error {
	for _, p := range l.Plugins {
		if err := l.setupOnePlugin(ctx, p, watcher); err != nil {
			return err
		}
	}

	if l.GlobalSetup != nil {
		teardownFn, err := l.GlobalSetup(ctx)
		if err != nil {
			return fmt.Errorf("global setup: %w", err)
		}
		l.setupTeardownFn = teardownFn
	}
	return nil
}

func (l *Lifecycle) setupOnePlugin(ctx context.Context, p Plugin, watcher *signalwatch.Watcher) error {
	done := make(chan error, 1)
	go func() { done <- p.Setup(ctx) }()

	var watch <-chan struct{}
	if watcher != nil {
		watch = watcher.Done()
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("plugin %s setup: %w", p.Name(), err)
		}
		l.setupPlugins = append(l.setupPlugins, p)
		return nil
	case <-watch:
		return ErrInterrupted
	}
}

// Teardown runs unconditionally, in reverse, via report for each step's
// error: the GlobalSetup-returned function first, then GlobalTeardown,
// then plugins in reverse setup order. A failing step never skips the
// rest.
func (l *Lifecycle) Teardown(ctx context.Context, report func(error)) {
	runAndReport(report, func() error {
		if l.setupTeardownFn == nil {
			return nil
		}
		return l.setupTeardownFn(ctx)
	})

	runAndReport(report, func() error {
		if l.GlobalTeardown == nil {
			return nil
		}
		return l.GlobalTeardown(ctx)
	})

	for i := len(l.setupPlugins) - 1; i >= 0; i-- {
		p := l.setupPlugins[i]
		runAndReport(report, func() error { return p.Teardown(ctx) })
	}
}

// runAndReport converts a failing step into a reported error instead of
// propagating it, so later steps always still run.
func runAndReport(report func(error), fn func() error) {
	if err := fn(); err != nil {
		report(err)
	}
}

// Package signalwatch implements a scoped signal-watcher resource: a
// future that resolves on the first process interrupt, so long
// operations can race against it and surface interrupts as an orderly
// 'interrupted' status rather than abrupt termination.
package signalwatch

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

// Watcher installs an interrupt handler on construction and uninstalls
// it on Disarm.
type Watcher struct {
	done      chan struct{}
	sig       chan os.Signal
	hadSignal atomic.Bool
	disarmed  sync.Once
}

// New installs the handler and returns an armed Watcher.
func New() *Watcher {
	w := &Watcher{
		done: make(chan struct{}),
		sig:  make(chan os.Signal, 1),
	}
	signal.Notify(w.sig, os.Interrupt)
	go w.wait()
	return w
}

func (w *Watcher) wait() {
	if _, ok := <-w.sig; ok {
		w.hadSignal.Store(true)
		close(w.done)
	}
}

// Done returns a channel that closes on the first interrupt; callers
// race it against whatever long operation they're watching via a
// select, so "operation completes" and "signal fires" resolve however
// they happen first.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// HadSignal reports whether an interrupt has been observed.
func (w *Watcher) HadSignal() bool { return w.hadSignal.Load() }

// Disarm uninstalls the handler. Safe to call more than once, and safe
// to call whether or not a signal ever arrived.
func (w *Watcher) Disarm() {
	signal.Stop(w.sig)
	w.disarmed.Do(func() { close(w.sig) })
}

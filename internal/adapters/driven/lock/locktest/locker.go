// Package locktest provides an in-process Locker that records how it
// was used.
package locktest

import (
	"context"
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
)

// Ensure Locker implements the interface.
var _ driven.Locker = (*Locker)(nil)

// Mode is the lock mode of one recorded call.
type Mode string

// Lock modes.
const (
	Exclusive Mode = "exclusive"
	Shared    Mode = "shared"
)

// Locker is a process-local reader/writer lock that records every
// acquisition. The zero value is ready to use.
type Locker struct {
	rw sync.RWMutex

	mu    sync.Mutex
	calls []Mode
	held  bool
	err   error
}

// Fail makes every subsequent acquisition return err without running fn.
func (l *Locker) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// WithExclusive runs fn under the write lock.
func (l *Locker) WithExclusive(_ context.Context, fn func() error) error {
	if err := l.record(Exclusive); err != nil {
		return err
	}
	l.rw.Lock()
	defer l.rw.Unlock()
	l.setHeld(true)
	defer l.setHeld(false)
	return fn()
}

// WithShared runs fn under the read lock.
func (l *Locker) WithShared(_ context.Context, fn func() error) error {
	if err := l.record(Shared); err != nil {
		return err
	}
	l.rw.RLock()
	defer l.rw.RUnlock()
	return fn()
}

// Calls returns the modes acquired so far, in order.
func (l *Locker) Calls() []Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Mode, len(l.calls))
	copy(out, l.calls)
	return out
}

// HeldExclusive reports whether the exclusive lock is currently held.
func (l *Locker) HeldExclusive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

func (l *Locker) record(m Mode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, m)
	return l.err
}

func (l *Locker) setHeld(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = v
}

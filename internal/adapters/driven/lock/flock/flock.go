// Package flock implements the cross-process guard with an advisory
// flock(2) on a shared lock file.
package flock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// Ensure Locker implements the interface.
var _ driven.Locker = (*Locker)(nil)

// DefaultPollInterval is how often a contended lock is retried.
const DefaultPollInterval = 10 * time.Millisecond

// Locker serialises hardware access between cpufreqctl processes.
// The kernel drops the lock when the holding process exits, so a
// crashed instance never leaves it held.
type Locker struct {
	path     string
	interval time.Duration
}

// Option configures a Locker.
type Option func(*Locker)

// WithPollInterval sets the retry interval for a contended lock.
func WithPollInterval(d time.Duration) Option {
	return func(l *Locker) {
		if d > 0 {
			l.interval = d
		}
	}
}

// New creates a locker on the given lock file.
func New(path string, opts ...Option) *Locker {
	l := &Locker{path: path, interval: DefaultPollInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the lock file path.
func (l *Locker) Path() string {
	return l.path
}

// WithExclusive runs fn while holding the lock exclusively.
func (l *Locker) WithExclusive(ctx context.Context, fn func() error) error {
	return l.with(ctx, unix.LOCK_EX, "exclusive", fn)
}

// WithShared runs fn while holding the lock in shared mode.
func (l *Locker) WithShared(ctx context.Context, fn func() error) error {
	return l.with(ctx, unix.LOCK_SH, "shared", fn)
}

func (l *Locker) with(ctx context.Context, how int, mode string, fn func() error) error {
	f, err := l.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := l.acquire(ctx, int(f.Fd()), how); err != nil {
		return fmt.Errorf("acquire %s lock %s: %w", mode, l.path, err)
	}
	logger.Debug("acquired %s lock %s", mode, l.path)
	defer func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		logger.Debug("released %s lock %s", mode, l.path)
	}()

	return fn()
}

func (l *Locker) open() (*os.File, error) {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return f, nil
}

// acquire polls a non-blocking flock until it succeeds or ctx ends.
func (l *Locker) acquire(ctx context.Context, fd, how int) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		err := unix.Flock(fd, how|unix.LOCK_NB)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, unix.EWOULDBLOCK), errors.Is(err, unix.EINTR):
		default:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

package driven

import "context"

// Locker is a scoped, cross-process advisory lock shared by every
// instance of cpufreqctl. The lock is held only while fn runs and is
// released on every return path. Implementations must not be nested
// within one process.
type Locker interface {
	// WithExclusive runs fn while holding the lock exclusively.
	WithExclusive(ctx context.Context, fn func() error) error

	// WithShared runs fn while holding the lock in shared mode.
	WithShared(ctx context.Context, fn func() error) error
}

package driven

import (
	"context"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// Backend drives one kernel frequency-scaling subsystem.
//
// Percentages crossing this interface are in [0,100]; callers clamp
// before calling a setter. Every method other than Name and Supported
// assumes Supported returned true; a missing control file is reported
// as a domain.InternalError.
type Backend interface {
	// Name returns the driver this backend controls.
	Name() domain.BackendName

	// Supported reports whether the driver's control files exist.
	// It never fails and has no side effects.
	Supported() bool

	// Turbo returns the current turbo-boost state.
	Turbo(ctx context.Context) (domain.TurboState, error)

	// SetTurbo enables or disables turbo boost.
	SetTurbo(ctx context.Context, state domain.TurboState) error

	// Min returns the minimum frequency limit.
	Min(ctx context.Context) (domain.Percentage, error)

	// SetMin sets the minimum frequency limit. A value above the current
	// maximum is clamped down to it; drivers may also impose a floor.
	SetMin(ctx context.Context, pct domain.Percentage) error

	// Max returns the maximum frequency limit.
	Max(ctx context.Context) (domain.Percentage, error)

	// SetMax sets the maximum frequency limit. A value below the current
	// minimum is clamped up to it.
	SetMax(ctx context.Context, pct domain.Percentage) error

	// Frequencies reports the range of limits the hardware accepts.
	// Drivers with a continuous range may probe it by transiently writing
	// extremal limits under the exclusive lock and restoring them after.
	Frequencies(ctx context.Context) (domain.FrequencyMode, error)

	// CoreFrequencies reads the current frequency of every logical core,
	// ordered by core number.
	CoreFrequencies(ctx context.Context) ([]domain.Frequency, error)
}

// BackendBuilder creates a backend from the invocation configuration.
type BackendBuilder func(cfg domain.Config, locker Locker) Backend

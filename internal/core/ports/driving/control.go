package driving

import (
	"context"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// ControlService exposes the uniform command surface over the active backend.
type ControlService interface {
	// Turbo returns the turbo-boost state.
	Turbo(ctx context.Context) (domain.TurboState, error)

	// SetTurbo enables or disables turbo boost.
	SetTurbo(ctx context.Context, state domain.TurboState) error

	// Min returns the minimum limit as a percentage.
	Min(ctx context.Context) (domain.Percentage, error)

	// SetMin sets the minimum limit. The value is clamped to [0,100].
	SetMin(ctx context.Context, pct domain.Percentage) error

	// Max returns the maximum limit as a percentage.
	Max(ctx context.Context) (domain.Percentage, error)

	// SetMax sets the maximum limit. The value is clamped to [0,100].
	SetMax(ctx context.Context, pct domain.Percentage) error

	// Reset restores max=100, min=0 and turbo on, in that order.
	Reset(ctx context.Context) error

	// Frequencies reports the accepted limit range.
	Frequencies(ctx context.Context) (domain.FrequencyMode, error)

	// Current summarises the current per-core frequencies.
	Current(ctx context.Context) (domain.CoreStatistics, error)

	// CoreFrequencies returns every core's current frequency.
	CoreFrequencies(ctx context.Context) ([]domain.Frequency, error)
}

// BackendStatus pairs a backend with its capability probe result.
type BackendStatus struct {
	Name      domain.BackendName
	Supported bool
}

// BackendService lists backends and resolves the active one.
type BackendService interface {
	// List probes every known backend, in selection priority order.
	List() []BackendStatus

	// Current resolves and returns the active backend's name.
	Current() (domain.BackendName, error)
}

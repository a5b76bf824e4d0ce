// Package messages defines Bubbletea message types for the monitor.
package messages

import (
	"time"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// Snapshot is one reading of the frequency state.
type Snapshot struct {
	Backend     domain.BackendName
	Turbo       domain.TurboState
	Min         domain.Percentage
	Max         domain.Percentage
	Stats       domain.CoreStatistics
	Cores       []domain.Frequency
	Utilisation []float64
	TakenAt     time.Time
}

// Tick requests a scheduled refresh.
type Tick struct {
	At time.Time
}

// SnapshotLoaded carries a snapshot back to the model. Scheduled is set
// when the load came from a Tick, so only those loads schedule the next one.
type SnapshotLoaded struct {
	Snapshot  Snapshot
	Scheduled bool
	Err       error
}

// ControlApplied reports the outcome of a turbo or limit change.
type ControlApplied struct {
	Action string
	Err    error
}

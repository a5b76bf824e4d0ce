// Package tui provides the live terminal monitor for cpufreqctl.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// UtilisationFunc returns per-CPU utilisation percentages.
type UtilisationFunc func(ctx context.Context) ([]float64, error)

// Ports aggregates the driving ports required by the monitor.
type Ports struct {
	// Control reads and changes frequency limits.
	Control driving.ControlService

	// Backends reports the active backend.
	Backends driving.BackendService

	// Utilisation is optional; without it the monitor shows frequencies only.
	Utilisation UtilisationFunc
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Control == nil {
		return ErrMissingControlService
	}
	if p.Backends == nil {
		return ErrMissingBackendService
	}
	return nil
}

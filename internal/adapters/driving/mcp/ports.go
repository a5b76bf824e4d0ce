package mcp

import (
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Control reads and changes limits and turbo state.
	Control driving.ControlService

	// Backends reports the active scaling driver.
	Backends driving.BackendService
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

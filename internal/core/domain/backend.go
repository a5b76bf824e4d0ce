package domain

// BackendName identifies a kernel frequency-scaling driver.
type BackendName string

// Known backends, listed in automatic selection priority order.
const (
	// BackendIntelPState drives /sys/devices/system/cpu/intel_pstate.
	BackendIntelPState BackendName = "intel_pstate"

	// BackendCPUFreq drives the generic per-core cpufreq policy files.
	BackendCPUFreq BackendName = "cpufreq"

	// BackendAutomatic is not a driver: it asks the selector to probe.
	BackendAutomatic BackendName = "automatic"
)

// AllBackends returns the known drivers in automatic selection order.
func AllBackends() []BackendName {
	return []BackendName{BackendIntelPState, BackendCPUFreq}
}

// IsValid returns true if the name is a known driver.
// BackendAutomatic is a valid choice but not a valid driver.
func (b BackendName) IsValid() bool {
	switch b {
	case BackendIntelPState, BackendCPUFreq:
		return true
	default:
		return false
	}
}

// IsValidChoice returns true if the name may be requested by the user.
func (b BackendName) IsValidChoice() bool {
	return b == BackendAutomatic || b.IsValid()
}

// String returns the string representation.
func (b BackendName) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b BackendName) Description() string {
	switch b {
	case BackendIntelPState:
		return "Intel P-State (percentage based)"
	case BackendCPUFreq:
		return "Generic cpufreq (per-core kHz)"
	case BackendAutomatic:
		return "Automatic (first supported driver)"
	default:
		return "Unknown"
	}
}

// Package domain defines the core entities of cpufreqctl.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - BackendName: A kernel frequency-scaling driver (intel_pstate, cpufreq)
//   - Percentage: A limit relative to the reference maximum frequency
//   - Frequency: An absolute frequency in kHz, the sysfs native unit
//   - FrequencyMode: The continuous or discrete range a driver accepts
//   - CoreStatistics: Summary of per-core current frequencies
//   - Config: The immutable per-invocation configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

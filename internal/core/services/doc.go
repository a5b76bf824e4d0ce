// Package services implements the driving port interfaces.
// Services contain the core logic of cpufreqctl (backend selection,
// limit clamping, reset ordering, statistics) and orchestrate calls to
// driven ports (backends, locker, config store).
//
// Services are pure Go with no CGO and no direct filesystem access.
package services

package domain

// OutputFormat selects how reporting commands print results.
type OutputFormat string

// Output formats.
const (
	// FormatHuman prints readable lines to the diagnostic stream.
	FormatHuman OutputFormat = "human"

	// FormatJSON prints structured JSON to standard output.
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	return f == FormatHuman || f == FormatJSON
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Default filesystem locations.
const (
	DefaultSysfsRoot = "/sys/devices/system/cpu"
	DefaultLockFile  = "/run/lock/cpufreqctl.lock"
)

// Config is the per-invocation configuration passed to every core operation.
// It is built once at startup and never mutated.
type Config struct {
	// Backend is the requested driver or BackendAutomatic.
	Backend BackendName

	// Format selects human or JSON output.
	Format OutputFormat

	// ReferenceMax overrides the reference maximum frequency when non-zero.
	ReferenceMax Frequency

	// SysfsRoot is the CPU device tree, normally /sys/devices/system/cpu.
	SysfsRoot string

	// LockFile is the advisory lock shared by all instances.
	LockFile string

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendAutomatic,
		Format:    FormatHuman,
		SysfsRoot: DefaultSysfsRoot,
		LockFile:  DefaultLockFile,
	}
}

// Validate checks the configuration for unknown values.
func (c Config) Validate() error {
	if !c.Backend.IsValidChoice() {
		return &InvalidBackendError{Name: string(c.Backend)}
	}
	if !c.Format.IsValid() {
		return &InvalidArgumentError{Value: string(c.Format), Context: "--format (expected human or json)"}
	}
	if c.ReferenceMax < 0 {
		return &OutOfRangeError{Value: int64(c.ReferenceMax), Min: 0, Max: int64(^uint32(0))}
	}
	return nil
}

package driven

// ConfigStore provides access to cpufreqctl's own configuration file.
// Keys use dot notation for nested tables (e.g. "reference.max_freq").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt64 retrieves an integer configuration value, such as a
	// frequency in kHz. Returns 0 if key doesn't exist or isn't an integer.
	GetInt64(key string) int64

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Keys returns every stored key, sorted.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}

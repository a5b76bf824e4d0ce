package driving

import "github.com/custodia-labs/cpufreqctl/internal/core/domain"

// Overrides holds values supplied on the command line or environment.
// Empty or zero fields leave the lower-precedence value in place.
type Overrides struct {
	Backend      string
	Format       string
	ReferenceMax int64
	Verbose      bool
}

// SettingsService builds the invocation configuration and edits the
// configuration file.
type SettingsService interface {
	// Resolve merges defaults, the config file and overrides into a
	// validated configuration.
	Resolve(overrides Overrides) (domain.Config, error)

	// Set validates and stores one configuration key.
	Set(key, value string) error

	// Values returns every stored key with its value.
	Values() map[string]any

	// Path returns the configuration file path.
	Path() string
}

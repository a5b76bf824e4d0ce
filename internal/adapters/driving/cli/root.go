// Package cli implements the cpufreqctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	flagBackend   string
	flagFormat    string
	flagConfigDir string
	flagMaxFreq   int64
	flagVerbose   bool
)

// Services is the control surface built for one resolved configuration.
type Services struct {
	Control     driving.ControlService
	Backends    driving.BackendService
	Utilisation tui.UtilisationFunc
}

// Wiring connects the command tree to the core. Settings is opened
// first so that config commands work even when the stored configuration
// does not resolve; Services is only built for commands that touch
// hardware.
type Wiring struct {
	// Settings opens the settings service for a config directory.
	// An empty directory selects the default location.
	Settings func(configDir string) (driving.SettingsService, error)

	// Services builds the backends and control service.
	Services func(cfg domain.Config) (*Services, error)
}

var (
	wiring *Wiring

	// cached per invocation
	settings driving.SettingsService
	config   *domain.Config
	svcCache *Services
)

// SetWiring installs the wiring and clears anything built from a
// previous one.
func SetWiring(w *Wiring) {
	wiring = w
	settings = nil
	config = nil
	svcCache = nil
}

var rootCmd = &cobra.Command{
	Use:   "cpufreqctl",
	Short: "Control CPU frequency scaling",
	Long: `cpufreqctl reads and changes CPU frequency limits and turbo boost
through the kernel's intel_pstate or cpufreq drivers.

Limits are percentages of the CPU's reference maximum frequency, so the
same commands work on either driver. Reporting commands print readable
lines to stderr, or JSON to stdout with --format json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	RunE: requireSubcommand,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagBackend, "backend", "",
		"scaling driver: automatic, intel_pstate or cpufreq (default automatic)")
	flags.StringVar(&flagFormat, "format", "", "output format: human or json (default human)")
	flags.StringVar(&flagConfigDir, "config", "", "configuration directory (default ~/.config/cpufreqctl)")
	flags.Int64Var(&flagMaxFreq, "max-freq", 0, "reference maximum frequency in kHz, overriding detection")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "print debug information to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &domain.InvalidArgumentError{Value: err.Error(), Context: cmd.CommandPath()}
	})
}

// Execute runs the command tree and returns an error from the
// exit-code taxonomy.
func Execute(ctx context.Context) error {
	return classify(rootCmd.ExecuteContext(ctx))
}

// classify maps errors raised by argument parsing onto InvalidArgument.
// Errors already in the taxonomy pass through unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInternal), domain.ExitCode(err) != domain.ExitInternalError:
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.Internal("cli", err)
	default:
		return &domain.InvalidArgumentError{Value: err.Error(), Context: "command line"}
	}
}

// requireSubcommand is the RunE of command groups. Without arguments it
// prints usage and fails with ErrNoArguments.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.PrintErrln(cmd.UsageString())
		return domain.ErrNoArguments
	}
	return &domain.InvalidArgumentError{Value: args[0], Context: cmd.CommandPath() + " subcommand"}
}

// exactArgs requires n positional arguments. None at all is ErrNoArguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("%s: %w", cmd.CommandPath(), domain.ErrNoArguments)
		}
		return &domain.InvalidArgumentError{
			Value:   fmt.Sprint(args),
			Context: fmt.Sprintf("%s (expected %d arguments)", cmd.CommandPath(), n),
		}
	}
}

// noArgs rejects positional arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return &domain.InvalidArgumentError{Value: args[0], Context: cmd.CommandPath()}
}

func overrides() driving.Overrides {
	return driving.Overrides{
		Backend:      flagBackend,
		Format:       flagFormat,
		ReferenceMax: flagMaxFreq,
		Verbose:      flagVerbose,
	}
}

func settingsService() (driving.SettingsService, error) {
	if settings != nil {
		return settings, nil
	}
	if wiring == nil || wiring.Settings == nil {
		return nil, domain.Internal("cli", errors.New("settings service not configured"))
	}
	s, err := wiring.Settings(flagConfigDir)
	if err != nil {
		return nil, domain.Internal("config", err)
	}
	settings = s
	return settings, nil
}

func resolvedConfig() (domain.Config, error) {
	if config != nil {
		return *config, nil
	}
	s, err := settingsService()
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := s.Resolve(overrides())
	if err != nil {
		return domain.Config{}, err
	}
	config = &cfg
	return cfg, nil
}

func loadServices() (*Services, domain.Config, error) {
	cfg, err := resolvedConfig()
	if err != nil {
		return nil, domain.Config{}, err
	}
	if svcCache != nil {
		return svcCache, cfg, nil
	}
	if wiring.Services == nil {
		return nil, cfg, domain.Internal("cli", errors.New("control services not configured"))
	}
	svc, err := wiring.Services(cfg)
	if err != nil {
		return nil, cfg, domain.Internal("cli", err)
	}
	svcCache = svc
	return svcCache, cfg, nil
}

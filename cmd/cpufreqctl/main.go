// Command cpufreqctl controls CPU frequency scaling through the
// intel_pstate and cpufreq drivers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/backend/cpufreq"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/backend/intelpstate"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/lock/flock"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/utilisation"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetWiring(&cli.Wiring{
		Settings: openSettings,
		Services: buildServices,
	})

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(domain.ExitCode(err))
	}
}

func openSettings(configDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

var builders = map[domain.BackendName]driven.BackendBuilder{
	domain.BackendIntelPState: func(cfg domain.Config, l driven.Locker) driven.Backend {
		return intelpstate.New(cfg, l)
	},
	domain.BackendCPUFreq: func(cfg domain.Config, l driven.Locker) driven.Backend {
		return cpufreq.New(cfg, l)
	},
}

func buildServices(cfg domain.Config) (*cli.Services, error) {
	locker := flock.New(cfg.LockFile)
	selector := services.NewBackendSelector(cfg, locker, builders)
	return &cli.Services{
		Control:     services.NewControlService(selector, locker, services.NewAggregator(nil)),
		Backends:    selector,
		Utilisation: utilisation.PerCPU,
	}, nil
}

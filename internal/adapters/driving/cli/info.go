package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report frequency ranges and current frequencies",
	RunE:  requireSubcommand,
}

var infoFrequenciesCmd = &cobra.Command{
	Use:   "frequencies",
	Short: "Print the range of limits the hardware accepts",
	Long: `Prints the limits the hardware accepts, in percent. Drivers that publish
a frequency table report it as a discrete set. Otherwise the range is
probed by briefly widening the limits, which are then restored.`,
	Args: noArgs,
	RunE: runInfoFrequencies,
}

var infoCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print min, max, average and a sampled current core frequency in kHz",
	Args:  noArgs,
	RunE:  runInfoCurrent,
}

var infoCoresCmd = &cobra.Command{
	Use:   "cores",
	Short: "Print the current frequency of every core in kHz",
	Args:  noArgs,
	RunE:  runInfoCores,
}

func init() {
	infoCmd.AddCommand(infoFrequenciesCmd, infoCurrentCmd, infoCoresCmd)
	rootCmd.AddCommand(infoCmd)
}

func runInfoFrequencies(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	mode, err := svc.Control.Frequencies(cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg.Format)
	return p.emit(newFrequencyModeJSON(mode), func() {
		if mode.Kind() == domain.ModeDiscrete {
			values := make([]string, 0, len(mode.Values()))
			for _, v := range mode.Values() {
				values = append(values, fmt.Sprintf("%d%%", v))
			}
			p.line("discrete: %s", strings.Join(values, " "))
			return
		}
		p.line("continuous: %d%% - %d%%", mode.Min(), mode.Max())
	})
}

func runInfoCurrent(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	stats, err := svc.Control.Current(cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg.Format)
	return p.emit(newStatisticsJSON(stats), func() {
		p.line("min: %s", stats.Min)
		p.line("max: %s", stats.Max)
		p.line("avg: %s", stats.Avg)
		p.line("rnd: %s", stats.Rnd)
	})
}

func runInfoCores(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	freqs, err := svc.Control.CoreFrequencies(cmd.Context())
	if err != nil {
		return err
	}

	values := make([]int64, len(freqs))
	for i, f := range freqs {
		values[i] = int64(f)
	}
	p := newPrinter(cmd, cfg.Format)
	return p.emit(values, func() {
		for i, f := range freqs {
			p.line("cpu%d: %s", i, f)
		}
	})
}

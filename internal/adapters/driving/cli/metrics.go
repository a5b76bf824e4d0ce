package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/metrics"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

var flagListen string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print current state in the Prometheus text format",
	Long: `Prints turbo state, limits and per-core frequencies in the Prometheus
text exposition format on stdout.

With --listen ADDR the same metrics are served on http://ADDR/metrics and
read again on every scrape, until interrupted.`,
	Args: noArgs,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&flagListen, "listen", "", "serve metrics over HTTP on this address, e.g. :9120")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	reg, err := metrics.NewRegistry(metrics.NewCollector(cmd.Context(), svc.Control, svc.Backends))
	if err != nil {
		return domain.Internal("metrics", err)
	}

	if flagListen == "" {
		if err := metrics.WriteText(cmd.OutOrStdout(), reg); err != nil {
			return domain.Internal("metrics", err)
		}
		return nil
	}

	ln, err := net.Listen("tcp", flagListen)
	if err != nil {
		return &domain.InvalidArgumentError{Value: flagListen, Context: "--listen (" + err.Error() + ")"}
	}
	if err := metrics.Serve(cmd.Context(), ln, reg); err != nil {
		return domain.Internal("metrics", err)
	}
	return nil
}

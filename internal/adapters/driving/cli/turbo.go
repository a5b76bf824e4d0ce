package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

var turboCmd = &cobra.Command{
	Use:   "turbo",
	Short: "Get or set turbo boost",
	RunE:  requireSubcommand,
}

var turboGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the turbo boost state",
	Args:  noArgs,
	RunE:  runTurboGet,
}

var turboSetCmd = &cobra.Command{
	Use:       "set {on|off}",
	Short:     "Enable or disable turbo boost",
	Args:      exactArgs(1),
	ValidArgs: []string{string(domain.TurboOn), string(domain.TurboOff)},
	RunE:      runTurboSet,
}

func init() {
	turboCmd.AddCommand(turboGetCmd, turboSetCmd)
	rootCmd.AddCommand(turboCmd)
}

func runTurboGet(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	state, err := svc.Control.Turbo(cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg.Format)
	return p.emit(state, func() {
		p.line("%s", state)
	})
}

func runTurboSet(cmd *cobra.Command, args []string) error {
	state, err := domain.ParseTurboState(args[0])
	if err != nil {
		return err
	}
	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	return svc.Control.SetTurbo(cmd.Context(), state)
}

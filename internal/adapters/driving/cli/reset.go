package cli

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the full frequency range with turbo boost on",
	Long: `Sets the maximum limit to 100%, then the minimum limit to 0%, then
enables turbo boost. Drivers with a minimum floor keep their floor.`,
	Args: noArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	return svc.Control.Reset(cmd.Context())
}

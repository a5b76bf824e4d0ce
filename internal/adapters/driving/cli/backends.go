package cli

import (
	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List scaling drivers and the one in use",
	RunE:  requireSubcommand,
}

var backendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show which scaling drivers this system supports",
	Args:  noArgs,
	RunE:  runBackendsList,
}

var backendsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the scaling driver selected for this invocation",
	Args:  noArgs,
	RunE:  runBackendsCurrent,
}

func init() {
	backendsCmd.AddCommand(backendsListCmd, backendsCurrentCmd)
	rootCmd.AddCommand(backendsCmd)
}

func runBackendsList(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	statuses := svc.Backends.List()

	supported := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		supported[s.Name.String()] = s.Supported
	}
	p := newPrinter(cmd, cfg.Format)
	return p.emit(supported, func() {
		for _, s := range statuses {
			p.line("%-14s %s", s.Name, p.styles.Supported(s.Supported))
		}
	})
}

func runBackendsCurrent(cmd *cobra.Command, _ []string) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	name, err := svc.Backends.Current()
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg.Format)
	return p.emit(name.String(), func() {
		p.line("%s", name)
	})
}

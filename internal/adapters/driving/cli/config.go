package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change stored defaults",
	Long: `Show or change the defaults stored in the configuration file.

Supported keys:
  ` + strings.Join(services.SupportedKeys(), "\n  "),
	RunE: requireSubcommand,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored configuration",
	Args:  noArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a configuration value",
	Args:  exactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  noArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configPrinter takes the format from the flag only, so a broken stored
// format can still be inspected and repaired.
func configPrinter(cmd *cobra.Command) *printer {
	return newPrinter(cmd, domain.OutputFormat(flagFormat))
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}
	values := s.Values()

	p := configPrinter(cmd)
	return p.emit(values, func() {
		if len(values) == 0 {
			p.line("%s", p.styles.Muted.Render("no stored settings"))
			return
		}
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			p.line("%s = %v", k, values[k])
		}
	})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := s.Set(key, value); err != nil {
		return err
	}
	p := configPrinter(cmd)
	if p.format == domain.FormatHuman {
		p.line("%s", p.styles.Success.Render(fmt.Sprintf("%s set to %s", key, value)))
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}
	path := s.Path()
	p := configPrinter(cmd)
	return p.emit(path, func() {
		p.line("%s", path)
	})
}

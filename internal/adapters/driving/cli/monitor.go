package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

var flagInterval time.Duration

// isTerminal reports whether stdin and stdout are both terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram runs a bubbletea model to completion.
var runProgram = func(cmd *cobra.Command, model tea.Model) error {
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch frequencies and limits live",
	Long: `Opens a live view of turbo state, limits and per-core frequencies.

Controls:
  +/-   Raise / lower the maximum limit
  t     Toggle turbo
  R     Reset limits and turbo
  r     Refresh now
  ?     Toggle help
  q     Quit`,
	Args: noArgs,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVar(&flagInterval, "interval", tui.DefaultInterval, "refresh interval")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	if flagInterval <= 0 {
		return &domain.InvalidArgumentError{Value: flagInterval.String(), Context: "--interval"}
	}
	if !isTerminal() {
		return &domain.InvalidArgumentError{Value: "monitor", Context: "requires an interactive terminal"}
	}

	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	app, err := tui.NewApp(&tui.Ports{
		Control:     svc.Control,
		Backends:    svc.Backends,
		Utilisation: svc.Utilisation,
	}, flagInterval)
	if err != nil {
		return domain.Internal("monitor", err)
	}
	app.WithContext(cmd.Context())

	err = runProgram(cmd, app)
	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil:
		return nil
	default:
		return domain.Internal("monitor", fmt.Errorf("run: %w", err))
	}
}

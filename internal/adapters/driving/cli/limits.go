package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// limit describes one of the min/max command groups.
type limit struct {
	name string
	get  func(driving.ControlService, context.Context) (domain.Percentage, error)
	set  func(driving.ControlService, context.Context, domain.Percentage) error
}

var (
	minLimit = limit{
		name: "min",
		get:  driving.ControlService.Min,
		set:  driving.ControlService.SetMin,
	}
	maxLimit = limit{
		name: "max",
		get:  driving.ControlService.Max,
		set:  driving.ControlService.SetMax,
	}
)

var (
	minCmd = newLimitCmd(minLimit, "Get or set the minimum frequency limit")
	maxCmd = newLimitCmd(maxLimit, "Get or set the maximum frequency limit")
)

func init() {
	rootCmd.AddCommand(minCmd, maxCmd)
}

func newLimitCmd(l limit, short string) *cobra.Command {
	group := &cobra.Command{
		Use:   l.name,
		Short: short,
		Long: short + `, as a percentage of the reference maximum frequency.
The minimum never exceeds the maximum: a conflicting value is clamped to
the other limit.`,
		RunE: requireSubcommand,
	}
	group.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the " + l.name + " limit in percent",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runLimitGet(cmd, l)
			},
		},
		&cobra.Command{
			Use:   "set VALUE",
			Short: "Set the " + l.name + " limit to VALUE percent (0-100)",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLimitSet(cmd, l, args[0])
			},
		},
	)
	return group
}

func runLimitGet(cmd *cobra.Command, l limit) error {
	svc, cfg, err := loadServices()
	if err != nil {
		return err
	}
	pct, err := l.get(svc.Control, cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg.Format)
	return p.emit(pct, func() {
		p.line("%d%%", pct)
	})
}

func runLimitSet(cmd *cobra.Command, l limit, arg string) error {
	pct, err := parsePercentage(arg, l.name+" set")
	if err != nil {
		return err
	}
	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	return l.set(svc.Control, cmd.Context(), pct)
}

// parsePercentage parses an integer in [0,100]. A trailing % is accepted.
func parsePercentage(arg, what string) (domain.Percentage, error) {
	n, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimSpace(arg), "%"), 10, 64)
	if err != nil {
		return 0, &domain.InvalidArgumentError{Value: arg, Context: what + " (expected an integer percentage)"}
	}
	if n < int64(domain.MinPercentage) || n > int64(domain.MaxPercentage) {
		return 0, &domain.OutOfRangeError{
			Value: n,
			Min:   int64(domain.MinPercentage),
			Max:   int64(domain.MaxPercentage),
		}
	}
	return domain.Percentage(n), nil
}

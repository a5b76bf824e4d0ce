package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// printer writes human lines to stderr and JSON documents to stdout.
type printer struct {
	cmd    *cobra.Command
	format domain.OutputFormat
	styles *styles.Styles
}

func newPrinter(cmd *cobra.Command, format domain.OutputFormat) *printer {
	if !format.IsValid() {
		format = domain.FormatHuman
	}
	return &printer{cmd: cmd, format: format, styles: styles.DefaultStyles()}
}

// emit prints v as JSON, or calls human in human mode.
func (p *printer) emit(v any, human func()) error {
	if p.format == domain.FormatJSON {
		enc := json.NewEncoder(p.cmd.OutOrStdout())
		if err := enc.Encode(v); err != nil {
			return domain.Internal("output", fmt.Errorf("encode json: %w", err))
		}
		return nil
	}
	human()
	return nil
}

// line writes one human-readable line to stderr.
func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.cmd.ErrOrStderr(), format+"\n", args...)
}

// frequencyModeJSON is the JSON shape of info frequencies.
type frequencyModeJSON struct {
	Mode        domain.FrequencyModeKind `json:"mode"`
	Min         *domain.Percentage       `json:"min,omitempty"`
	Max         *domain.Percentage       `json:"max,omitempty"`
	Frequencies []domain.Percentage      `json:"frequencies,omitempty"`
}

func newFrequencyModeJSON(m domain.FrequencyMode) frequencyModeJSON {
	out := frequencyModeJSON{Mode: m.Kind()}
	if m.Kind() == domain.ModeDiscrete {
		out.Frequencies = m.Values()
		return out
	}
	lo, hi := m.Min(), m.Max()
	out.Min, out.Max = &lo, &hi
	return out
}

// statisticsJSON is the JSON shape of info current.
type statisticsJSON struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
	Avg int64 `json:"avg"`
	Rnd int64 `json:"rnd"`
}

func newStatisticsJSON(s domain.CoreStatistics) statisticsJSON {
	return statisticsJSON{
		Min: int64(s.Min),
		Max: int64(s.Max),
		Avg: int64(s.Avg),
		Rnd: int64(s.Rnd),
	}
}

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// NoInput is the input schema of tools that take no arguments.
type NoInput struct{}

// StateOutput describes the active backend, turbo state and limits.
type StateOutput struct {
	Backend string `json:"backend"`
	Turbo   string `json:"turbo"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
}

// SetTurboInput is the input schema for the set_turbo tool.
type SetTurboInput struct {
	State string `json:"state" jsonschema:"on or off"`
}

// SetLimitInput is the input schema for the set_limit tool.
type SetLimitInput struct {
	Limit string `json:"limit" jsonschema:"which limit to change: min or max"`
	Value int    `json:"value" jsonschema:"percentage of the reference maximum frequency, 0 to 100"`
}

// FrequenciesOutput describes the range of accepted limits.
type FrequenciesOutput struct {
	Mode        string `json:"mode"`
	Min         *int   `json:"min,omitempty"`
	Max         *int   `json:"max,omitempty"`
	Frequencies []int  `json:"frequencies,omitempty"`
}

// CurrentOutput summarises per-core frequencies in kHz.
type CurrentOutput struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
	Avg int64 `json:"avg"`
	Rnd int64 `json:"rnd"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_state",
		Description: "Report the scaling driver, turbo boost state and min/max frequency limits in percent",
	}, s.handleGetState)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_turbo",
		Description: "Enable or disable turbo boost",
	}, s.handleSetTurbo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_limit",
		Description: "Set the min or max frequency limit in percent; conflicting values are clamped to the other limit",
	}, s.handleSetLimit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset",
		Description: "Restore max 100%, min 0% and turbo on",
	}, s.handleReset)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "frequencies",
		Description: "Report the limit range the hardware accepts",
	}, s.handleFrequencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current",
		Description: "Report min, max, average and a sampled current core frequency in kHz",
	}, s.handleCurrent)
}

func (s *Server) state(ctx context.Context) (StateOutput, error) {
	name, err := s.ports.Backends.Current()
	if err != nil {
		return StateOutput{}, err
	}
	turbo, err := s.ports.Control.Turbo(ctx)
	if err != nil {
		return StateOutput{}, err
	}
	lo, err := s.ports.Control.Min(ctx)
	if err != nil {
		return StateOutput{}, err
	}
	hi, err := s.ports.Control.Max(ctx)
	if err != nil {
		return StateOutput{}, err
	}
	return StateOutput{Backend: name.String(), Turbo: turbo.String(), Min: int(lo), Max: int(hi)}, nil
}

func (s *Server) handleGetState(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, StateOutput, error) {
	out, err := s.state(ctx)
	return nil, out, err
}

func (s *Server) handleSetTurbo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetTurboInput,
) (*mcp.CallToolResult, StateOutput, error) {
	state, err := domain.ParseTurboState(input.State)
	if err != nil {
		return nil, StateOutput{}, err
	}
	if err := s.ports.Control.SetTurbo(ctx, state); err != nil {
		return nil, StateOutput{}, err
	}
	out, err := s.state(ctx)
	return nil, out, err
}

func (s *Server) handleSetLimit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetLimitInput,
) (*mcp.CallToolResult, StateOutput, error) {
	pct := domain.Percentage(input.Value)
	if !pct.IsValid() {
		return nil, StateOutput{}, &domain.OutOfRangeError{
			Value: int64(input.Value),
			Min:   int64(domain.MinPercentage),
			Max:   int64(domain.MaxPercentage),
		}
	}

	var err error
	switch input.Limit {
	case "min":
		err = s.ports.Control.SetMin(ctx, pct)
	case "max":
		err = s.ports.Control.SetMax(ctx, pct)
	default:
		err = &domain.InvalidArgumentError{Value: input.Limit, Context: "limit (expected min or max)"}
	}
	if err != nil {
		return nil, StateOutput{}, err
	}
	out, err := s.state(ctx)
	return nil, out, err
}

func (s *Server) handleReset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, StateOutput, error) {
	if err := s.ports.Control.Reset(ctx); err != nil {
		return nil, StateOutput{}, fmt.Errorf("reset: %w", err)
	}
	out, err := s.state(ctx)
	return nil, out, err
}

func (s *Server) handleFrequencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, FrequenciesOutput, error) {
	mode, err := s.ports.Control.Frequencies(ctx)
	if err != nil {
		return nil, FrequenciesOutput{}, err
	}

	out := FrequenciesOutput{Mode: string(mode.Kind())}
	if mode.Kind() == domain.ModeDiscrete {
		for _, v := range mode.Values() {
			out.Frequencies = append(out.Frequencies, int(v))
		}
		return nil, out, nil
	}
	lo, hi := int(mode.Min()), int(mode.Max())
	out.Min, out.Max = &lo, &hi
	return nil, out, nil
}

func (s *Server) handleCurrent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, CurrentOutput, error) {
	stats, err := s.ports.Control.Current(ctx)
	if err != nil {
		return nil, CurrentOutput{}, err
	}
	return nil, CurrentOutput{
		Min: int64(stats.Min),
		Max: int64(stats.Max),
		Avg: int64(stats.Avg),
		Rnd: int64(stats.Rnd),
	}, nil
}

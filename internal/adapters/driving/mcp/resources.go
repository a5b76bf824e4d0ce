package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "cpufreqctl://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Scaling driver, turbo state, limits and per-core frequencies",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cores/{cpu}",
		Name:        "core-frequency",
		Description: "Current frequency of one logical core in kHz",
		MIMEType:    "text/plain",
	}, s.handleCoreResource)
}

type statusResource struct {
	StateOutput
	Cores []int64 `json:"cores"`
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	state, err := s.state(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	freqs, err := s.ports.Control.CoreFrequencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading core frequencies: %w", err)
	}

	status := statusResource{StateOutput: state, Cores: make([]int64, len(freqs))}
	for i, f := range freqs {
		status.Cores[i] = int64(f)
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleCoreResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cpu, ok := extractCore(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	freqs, err := s.ports.Control.CoreFrequencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading core frequencies: %w", err)
	}
	if cpu >= len(freqs) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     strconv.FormatInt(int64(freqs[cpu]), 10),
		}},
	}, nil
}

// extractCore parses the core index from cpufreqctl://cores/{cpu}.
func extractCore(uri string) (int, bool) {
	const prefix = uriScheme + "cores/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

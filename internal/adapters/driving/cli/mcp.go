package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/mcp"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

var flagMCPListen string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve frequency control to AI assistants over MCP",
	Long: `Starts a Model Context Protocol server exposing turbo, limit, reset
and reporting tools plus a status resource.

By default the server speaks JSON-RPC over stdio. With --listen ADDR it
serves the streamable HTTP transport instead.

Assistant configuration:
  {
    "mcpServers": {
      "cpufreqctl": {
        "command": "/usr/local/bin/cpufreqctl",
        "args": ["mcp"]
      }
    }
  }`,
	Args: noArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPListen, "listen", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

// runMCPServer is replaced in tests.
var runMCPServer = func(cmd *cobra.Command, server *mcp.Server) error {
	if flagMCPListen == "" {
		return server.Run(cmd.Context())
	}
	ln, err := net.Listen("tcp", flagMCPListen)
	if err != nil {
		return &domain.InvalidArgumentError{Value: flagMCPListen, Context: "--listen (" + err.Error() + ")"}
	}
	return server.RunHTTP(cmd.Context(), ln)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	svc, _, err := loadServices()
	if err != nil {
		return err
	}
	server, err := mcp.NewServer(&mcp.Ports{Control: svc.Control, Backends: svc.Backends}, version)
	if err != nil {
		return domain.Internal("mcp", err)
	}
	if err := runMCPServer(cmd, server); err != nil {
		return domain.Internal("mcp", err)
	}
	return nil
}

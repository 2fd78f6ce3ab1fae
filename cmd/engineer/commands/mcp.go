// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM and voice agents search the regulations and run calculators over stdio
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the race engineer as an MCP (Model Context Protocol) server over
stdio, so LLM and voice agents can call the regulations search and the
race calculators as tools.

The index is built or loaded before the server accepts requests; a
missing regulations document stops startup.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  engineer mcp

  # Configure in the agent host's MCP config:
  # {
  #   "mcpServers": {
  #     "race-engineer": {
  #       "command": "engineer",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	a, err := loadApp(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	server := a.MCPServer(versionInfo.Version)
	logger.Info("race engineer MCP server starting on stdio")

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

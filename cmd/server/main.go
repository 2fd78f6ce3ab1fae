// ABOUTME: Main entry point for the race engineer MCP server with stdio transport
// ABOUTME: Loads config, builds or loads the regulations index, then serves tools
package main

import (
	"context"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/app"
	"github.com/harper/race-engineer/internal/logging"
)

var version = "dev"

func main() {
	logger := logging.New(os.Getenv("ENGINEER_VERBOSE") != "", false)
	defer func() { _ = logger.Sync() }()

	cfg, err := app.LoadConfig(os.Getenv("ENGINEER_CONFIG"), logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}

	// Build failures halt startup; the server never runs without an index
	if err := a.Start(context.Background()); err != nil {
		logger.Fatal("failed to build or load the regulations index", zap.Error(err))
	}

	logger.Info("race engineer MCP server starting on stdio")
	if err := mcpserver.ServeStdio(a.MCPServer(version)); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

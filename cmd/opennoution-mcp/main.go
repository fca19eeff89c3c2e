package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "opennoution/internal/adapters/mcp"
	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/config"
	"opennoution/internal/logging"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data-dir", "", "directory holding the database and config")
	flag.Parse()

	cfg, err := config.Load(*dataDir)
	if err != nil {
		log.Fatalf("opennoution-mcp: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr
	logs, err := logging.New().WithLevel(cfg.LogLevel).Make()
	if err != nil {
		log.Fatalf("opennoution-mcp: %v", err)
	}
	logger := logs.Logger

	store, err := sqlite.Open(context.Background(), cfg.DBPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open store")
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"opennoution-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	logger.Info().Str("db", cfg.DBPath).Msg("serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/adapters/mcp"
)

// ServeMCP exposes the demo actions as MCP tools over stdio or SSE.
func ServeMCP(opts Options, transport, addr string) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	// Stdout carries JSON-RPC in stdio mode; logs always go to Stderr.
	log.SetOutput(os.Stderr)
	logger := logging.New(logging.Level(cfg.Debug))
	slog.SetDefault(logger)

	sigCtx := NewShutdownContext(context.Background())
	defer sigCtx.Cancel()

	a, err := createApp(sigCtx, cfg, opts, logger)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(a, mcp.WithLogger(logger))

	switch transport {
	case "stdio":
		logger.Info("Starting conncheck MCP Server (Stdio)", "backend", cfg.APIURL)
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting conncheck MCP Server (SSE)", "address", addr, "backend", cfg.APIURL)
		return srv.ServeSSE(sigCtx, addr, sseBaseURL(addr))
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}

func sseBaseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

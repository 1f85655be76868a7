package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/provisio/provisio"
	"github.com/provisio/provisio/internal/cli"
	"github.com/provisio/provisio/internal/logging"
	mcpAdapter "github.com/provisio/provisio/pkg/adapters/mcp"
	"github.com/provisio/provisio/pkg/flow"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the provisioning engine as an MCP server so AI agents can drive
the conversation as tools.

Supported Transports:
- stdio (default): Standard Input/Output. Ideal for local process integration.
- sse: Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		transport, _ := cmd.Flags().GetString("transport")
		if sse, _ := cmd.Flags().GetBool("sse"); sse {
			transport = "sse"
		}
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so stdout stays clean for JSON-RPC.
		logger := logging.New(logging.ParseLevel(cfg.Log.Level), "text")

		engine, closeStore, err := cli.BuildEngine(cfg, logger)
		if err != nil {
			log.Fatalf("Error initializing engine: %v", err)
		}
		defer func() { _ = closeStore() }()

		srv := mcpAdapter.NewServer(engine, flow.NewRegistry(), provisio.Version,
			mcpAdapter.WithLogger(logger))

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			logger.Info("starting MCP server", "transport", "stdio")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting MCP server", "transport", "sse", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if !errors.Is(err, http.ErrServerClosed) {
					logger.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Bool("sse", false, "Shorthand for --transport sse")
	mcpCmd.Flags().Int("port", 8001, "Port to listen on (only for SSE)")
}

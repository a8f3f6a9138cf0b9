package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/quizflow/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the quizzes as MCP tools so AI agents can run quiz sessions.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		srv := mcp.NewServer(a.service, a.logger)

		if a.cfg.MCP.Transport == "sse" {
			a.logger.Info("Starting QuizFlow MCP Server (SSE)", "port", a.cfg.MCP.Port)
			return srv.ServeSSE(ctx, a.cfg.MCP.Port)
		}
		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		a.logger.Info("Starting QuizFlow MCP Server (Stdio)")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicgraph/civicgraph/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker over MCP (SSE/HTTP)",
	Long: `Starts a Model Context Protocol server exposing the tracker's tools
over SSE/HTTP, so agent tooling can create entities, link them, and pull
classification and insight results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.ServePort
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		srv := mcpserver.NewServer(a.repo, a.engine, port)
		ctx := context.Background()
		if err := srv.Start(ctx); err != nil {
			return err
		}
		fmt.Printf("civicgraph MCP server listening on %s\n", srv.Addr())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vergeframework/verge/internal/config"
	"github.com/vergeframework/verge/internal/server"
	"github.com/vergeframework/verge/internal/sync"
	"github.com/vergeframework/verge/internal/ui"
)

var runServerCmd = &cobra.Command{
	Use:     "run-server",
	GroupID: "schema",
	Short:   "Start the schema overview server",
	Long: `Start an HTTP and WebSocket server exposing the declared schema.

Endpoints:
  /schema   full schema overview as JSON (apps, models, derived names)
  /ws       WebSocket pushing the overview on connect and sync reports
            as runs complete
  /health   server health as JSON

With --sync, a schema synchronization runs after the server comes up and
its report is broadcast to connected clients.

Example usage:
  verge run-server               # serve on the configured address
  verge run-server --port 9000   # override the port
  verge run-server --sync        # sync first, then keep serving`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("host") {
			settings.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			settings.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		logger := settings.NewLogger("[server] ")
		srv := server.NewServer(&server.Config{
			Host:   settings.Server.Host,
			Port:   settings.Server.Port,
			Apps:   settings.Apps,
			Logger: logger,
		})

		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start server: %v\n", err)
			os.Exit(1)
		}

		addr := srv.GetAddr()
		fmt.Printf("Schema server started on http://%s\n", addr)
		fmt.Printf("Schema overview: http://%s/schema\n", addr)
		fmt.Printf("WebSocket endpoint: ws://%s/ws\n", addr)
		fmt.Printf("Health check: http://%s/health\n", addr)

		if doSync, _ := cmd.Flags().GetBool("sync"); doSync {
			report, err := sync.Run(cmd.Context(), settings, settings.NewLogger("[sync] "))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error during sync: %v\n", err)
				_ = srv.Stop()
				os.Exit(1)
			}
			server.NewHandler(srv, logger).OnSyncComplete(report)
			fmt.Print(ui.RenderReport(report))
		}

		fmt.Println("\nPress Ctrl+C to stop...")

		// Wait for interrupt signal
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		<-ctx.Done()

		// Graceful shutdown
		fmt.Println("\nShutting down schema server...")
		if err := srv.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Schema server stopped")
	},
}

func init() {
	runServerCmd.Flags().String("host", "", "bind host (overrides config)")
	runServerCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	runServerCmd.Flags().Bool("sync", false, "run schema sync once the server is up")

	rootCmd.AddCommand(runServerCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vergeframework/verge/internal/config"
	"github.com/vergeframework/verge/internal/sync"
	"github.com/vergeframework/verge/internal/ui"
)

var syncDBCmd = &cobra.Command{
	Use:     "sync-db",
	GroupID: "schema",
	Short:   "Synchronize declared models with the database schema",
	Long: `Create the missing tables and secondary indexes for every model
declared by the configured applications.

A sync run is additive and idempotent:
  1. Reads the apps list from verge.yaml (or --config)
  2. Creates each model's table if it does not exist
  3. Creates a secondary index for each indexed field if it does not exist
  4. Prints one line per table and index outcome, then a summary

Existing objects are never altered or dropped, and re-running against an
unchanged schema issues no DDL at all. One model's failure is recorded
and the run continues with the next model; only an unreachable database
aborts the whole run.

Exit status is 0 only when nothing failed and the run was not aborted.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger := settings.NewLogger("[sync] ")
		report, err := sync.Run(cmd.Context(), settings, logger)
		if err != nil {
			if report != nil && report.Aborted {
				fmt.Print(ui.RenderReport(report))
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(ui.RenderReport(report))
		if report.HasFailures() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncDBCmd)
}

// Package cli implements the verge command line interface.
//
// Projects scaffolded by new-project embed these commands in their own
// binary: the generated main package blank-imports the project's
// applications, so their models are registered by the time a command
// runs, then calls Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "verge",
	Short: "Verge web framework command line",
	Long: `Verge is a web framework where applications declare their data models
in code and the framework keeps the database schema in step.

Common workflow:
  verge new-project myblog       # scaffold a project
  verge new-app blog             # scaffold an application package
  verge sync-db                  # create missing tables and indexes
  verge run-server               # serve the schema overview`,
	SilenceUsage: true,
}

// configPath is the --config value shared by commands that load settings.
var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default verge.yaml in the working directory)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "schema", Title: "Schema Commands:"},
		&cobra.Group{ID: "project", Title: "Project Commands:"},
	)
}

// Execute runs the CLI. Scaffolded projects call this from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

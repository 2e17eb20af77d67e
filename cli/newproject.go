package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vergeframework/verge/internal/config"
	"github.com/vergeframework/verge/internal/scaffold"
	"github.com/vergeframework/verge/internal/ui"
)

var newProjectCmd = &cobra.Command{
	Use:     "new-project [name]",
	GroupID: "project",
	Args:    cobra.MaximumNArgs(1),
	Short:   "Create a new verge project",
	Long: `Scaffold a new project: a Go module with a main package wiring the
verge commands, a verge.yaml, and optionally a first application.

With a name argument the remaining options come from flags; without one
an interactive form asks for everything.

Example usage:
  verge new-project                           # interactive
  verge new-project myblog                    # postgres, no app
  verge new-project myblog --engine sqlite --app blog`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := scaffold.ProjectOptions{}
		opts.Module, _ = cmd.Flags().GetString("module")
		opts.Engine, _ = cmd.Flags().GetString("engine")
		opts.App, _ = cmd.Flags().GetString("app")

		if len(args) > 0 {
			opts.Name = args[0]
		} else if err := projectForm(&opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		root, err := scaffold.NewProject(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Created project %s\n", ui.RenderPass("✓"), root)
		fmt.Println("\nNext steps:")
		fmt.Printf("  cd %s\n", root)
		fmt.Println("  go mod tidy")
		fmt.Printf("  go run ./cmd/%s sync-db\n", opts.Name)
	},
}

// projectForm collects project options interactively.
func projectForm(opts *scaffold.ProjectOptions) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Directory and binary name").
				Value(&opts.Name),
			huh.NewInput().
				Title("Module path").
				Description("Leave empty to use the project name").
				Value(&opts.Module),
			huh.NewSelect[string]().
				Title("Database engine").
				Options(
					huh.NewOption("PostgreSQL", config.EnginePostgres),
					huh.NewOption("SQLite", config.EngineSQLite),
					huh.NewOption("MySQL", config.EngineMySQL),
				).
				Value(&opts.Engine),
			huh.NewInput().
				Title("First application").
				Description("Leave empty to skip").
				Value(&opts.App),
		),
	).Run()
}

func init() {
	newProjectCmd.Flags().String("module", "", "Go module path (default: project name)")
	newProjectCmd.Flags().String("engine", config.EnginePostgres, "database engine: postgres, sqlite, mysql")
	newProjectCmd.Flags().String("app", "", "scaffold a first application with this name")

	rootCmd.AddCommand(newProjectCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vergeframework/verge/internal/scaffold"
	"github.com/vergeframework/verge/internal/ui"
)

var newAppCmd = &cobra.Command{
	Use:     "new-app <name>",
	GroupID: "project",
	Args:    cobra.ExactArgs(1),
	Short:   "Create a new application package",
	Long: `Scaffold an application package with a starter models.go in the
current project.

The name becomes the Go package name, so it must be lowercase letters,
digits, and underscores.

Example usage:
  verge new-app blog`,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		appDir, err := scaffold.NewApp(".", name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Created application %s\n", ui.RenderPass("✓"), appDir)
		fmt.Println("\nWire it up:")
		fmt.Printf("  1. Add %q to the apps list in verge.yaml\n", name)
		fmt.Println("  2. Blank-import the package from your main.go")
		fmt.Println("  3. Run sync-db to create its tables")
	},
}

func init() {
	rootCmd.AddCommand(newAppCmd)
}

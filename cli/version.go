package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the verge release version. Overridable at build time:
//
//	go build -ldflags "-X github.com/vergeframework/verge/cli.Version=1.2.3"
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the verge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("verge %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/quickdef/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Package cli wires the cobra command tree that fronts the lookup
// engine. Commands render LookupResults; all orchestration lives in
// internal/lookup.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/quickdef/internal/app"
	"github.com/heartmarshall/quickdef/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quickdef",
	Short: "Unified dictionary, thesaurus, and encyclopedia lookup",
	Long: `quickdef resolves a short text query against several independent
reference sources (dictionary, thesaurus, encyclopedia) concurrently and
merges whatever arrives into one result. Sources that fail or time out
are simply absent from the output; the lookup errors only when every
source failed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		logger = app.NewLogger(c.Log)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

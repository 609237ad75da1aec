package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/quickdef/internal/app"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Look up a word or phrase",
	Long: `Looks up the query against the configured sources and prints the
merged result: definition groups per source, thesaurus lists, and an
encyclopedic summary, in that order. Empty output with exit code 0 means
the sources were reached but had no matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	engine, cleanup, err := app.BuildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := engine.Lookup(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if lookupJSON {
		if err := renderJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		renderText(cmd.OutOrStdout(), res)
	}

	return res.Err
}

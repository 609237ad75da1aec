package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/quickdef/internal/adapter/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent result cache",
}

var pruneOlderThan time.Duration

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete persisted results older than a cutoff",
	Long: `Deletes rows from the on-disk result cache that are older than the
--older-than cutoff. The in-memory cache is per-process and needs no
pruning. Requires cache.path to be configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Cache.Path == "" {
			return errors.New("no cache path configured; set cache.path or CACHE_PATH")
		}

		store, err := sqlite.NewCacheStore(cfg.Cache.Path, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(cmd.Context(), pruneOlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries from %s\n", n, store.Path())
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 24*time.Hour, "delete entries older than this duration")
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

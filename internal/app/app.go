// Package app assembles the lookup engine from configuration: logger,
// source adapters, optional persistent cache, and the engine itself.
package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/quickdef/internal/adapter/provider/datamuse"
	"github.com/heartmarshall/quickdef/internal/adapter/provider/freedict"
	"github.com/heartmarshall/quickdef/internal/adapter/provider/wikipedia"
	"github.com/heartmarshall/quickdef/internal/adapter/sqlite"
	"github.com/heartmarshall/quickdef/internal/config"
	"github.com/heartmarshall/quickdef/internal/lookup"
	"github.com/heartmarshall/quickdef/internal/provider"
)

// BuildEngine wires the configured adapters and cache into a ready
// engine. The returned cleanup closes the persistent cache store (a
// no-op when none is configured) and must be called on shutdown.
func BuildEngine(cfg *config.Config, logger *slog.Logger) (*lookup.Engine, func(), error) {
	fd := freedict.NewSourceWithURL(cfg.Sources.FreeDictBaseURL, logger)
	dm := datamuse.NewSourceWithURL(cfg.Sources.DatamuseBaseURL, logger)
	wp := wikipedia.NewSourceWithURL(cfg.Sources.WikipediaBaseURL, logger)
	wp.SetUserAgent(cfg.Sources.UserAgent)

	sources := []provider.Source{fd, dm, wp}

	cleanup := func() {}
	var store lookup.PersistentStore
	if cfg.Cache.Path != "" {
		cacheStore, err := sqlite.NewCacheStore(cfg.Cache.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("app: open cache store: %w", err)
		}
		store = cacheStore
		cleanup = func() {
			if err := cacheStore.Close(); err != nil {
				logger.Warn("close cache store", slog.String("error", err.Error()))
			}
		}
		logger.Debug("persistent cache enabled", slog.String("path", cacheStore.Path()))
	}

	engine := lookup.NewEngine(logger, cfg.Lookup, cfg.Cache, lookup.DefaultRoutes(), sources, store)
	return engine, cleanup, nil
}

package lookup

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/quickdef/internal/config"
	"github.com/heartmarshall/quickdef/internal/domain"
)

// PersistentStore is an optional durable layer under the in-memory
// result cache. Get returns (nil, _, nil) on a miss.
type PersistentStore interface {
	Get(ctx context.Context, query string) (*domain.LookupResult, time.Time, error)
	Put(ctx context.Context, query string, res domain.LookupResult) error
}

type staleEntry struct {
	res      domain.LookupResult
	storedAt time.Time
}

// resultCache memoizes successful lookups, keyed by normalized query.
//
// Concurrent identical lookups share one in-flight computation via
// singleflight. Fresh entries live in a TTL LRU; lastGood retains the
// most recent success past its TTL so a total source failure can still
// be answered, explicitly marked stale.
type resultCache struct {
	log      *slog.Logger
	ttl      time.Duration
	group    singleflight.Group
	fresh    *expirable.LRU[string, domain.LookupResult]
	lastGood *lru.Cache[string, staleEntry]
	store    PersistentStore
}

func newResultCache(cfg config.CacheConfig, store PersistentStore, log *slog.Logger) *resultCache {
	fresh := expirable.NewLRU[string, domain.LookupResult](cfg.MaxEntries, nil, cfg.TTL)
	// Error only fires for size <= 0; config validation forbids that.
	lastGood, _ := lru.New[string, staleEntry](cfg.MaxEntries)

	return &resultCache{
		log:      log.With("component", "cache"),
		ttl:      cfg.TTL,
		fresh:    fresh,
		lastGood: lastGood,
		store:    store,
	}
}

// getOrCompute returns a cached result for key, or runs compute at most
// once across all concurrent callers with the same key.
func (c *resultCache) getOrCompute(ctx context.Context, key string, compute func() domain.LookupResult) domain.LookupResult {
	if res, ok := c.fresh.Get(key); ok {
		return res
	}
	if res, ok := c.persistentFresh(ctx, key); ok {
		return res
	}

	v, _, shared := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have populated the cache after our miss.
		if res, ok := c.fresh.Get(key); ok {
			return res, nil
		}

		res := compute()
		if res.Err == nil {
			c.remember(ctx, key, res)
			return res, nil
		}
		if stale, ok := c.staleFor(ctx, key); ok {
			c.log.InfoContext(ctx, "serving stale result after total failure",
				slog.String("query", key))
			return stale, nil
		}
		return res, nil
	})
	if shared {
		c.log.DebugContext(ctx, "joined in-flight lookup", slog.String("query", key))
	}
	return v.(domain.LookupResult)
}

func (c *resultCache) remember(ctx context.Context, key string, res domain.LookupResult) {
	c.fresh.Add(key, res)
	c.lastGood.Add(key, staleEntry{res: res, storedAt: time.Now()})

	if c.store != nil {
		if err := c.store.Put(ctx, key, res); err != nil {
			c.log.WarnContext(ctx, "persist cache entry", slog.String("query", key), slog.String("error", err.Error()))
		}
	}
}

// persistentFresh promotes a still-unexpired persisted result into the
// memory cache.
func (c *resultCache) persistentFresh(ctx context.Context, key string) (domain.LookupResult, bool) {
	if c.store == nil {
		return domain.LookupResult{}, false
	}
	res, storedAt, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "read cache store", slog.String("query", key), slog.String("error", err.Error()))
		return domain.LookupResult{}, false
	}
	if res == nil || time.Since(storedAt) > c.ttl {
		return domain.LookupResult{}, false
	}

	c.fresh.Add(key, *res)
	c.lastGood.Add(key, staleEntry{res: *res, storedAt: storedAt})
	return *res, true
}

// staleFor returns the most recent successful result for key regardless
// of age, marked stale. Memory wins over the persistent store.
func (c *resultCache) staleFor(ctx context.Context, key string) (domain.LookupResult, bool) {
	if entry, ok := c.lastGood.Get(key); ok {
		res := entry.res
		res.Stale = true
		return res, true
	}
	if c.store != nil {
		res, _, err := c.store.Get(ctx, key)
		if err == nil && res != nil {
			stale := *res
			stale.Stale = true
			return stale, true
		}
	}
	return domain.LookupResult{}, false
}

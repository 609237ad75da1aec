package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/quickdef/internal/config"
	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
	"github.com/heartmarshall/quickdef/pkg/ctxutil"
)

// outerDeadlineGrace pads the derived outer deadline so a source using
// its full worst-case window is not abandoned at the wire.
const outerDeadlineGrace = 500 * time.Millisecond

// Engine is the long-lived lookup orchestrator. It owns the per-source
// circuit breakers and rate limiters (shared across lookups) and the
// result cache; each lookup's request/outcome data stays private to that
// lookup.
type Engine struct {
	log      *slog.Logger
	cfg      config.LookupConfig
	routes   Routes
	sources  map[string]provider.Source
	breakers map[string]*circuitBreaker
	limiters map[string]*rate.Limiter
	cache    *resultCache

	outerDeadline time.Duration
}

// NewEngine assembles an engine over the given adapters. A nil store
// disables the persistent cache layer; routes defaults to
// DefaultRoutes() when nil.
func NewEngine(
	log *slog.Logger,
	cfg config.LookupConfig,
	cacheCfg config.CacheConfig,
	routes Routes,
	sources []provider.Source,
	store PersistentStore,
) *Engine {
	if routes == nil {
		routes = DefaultRoutes()
	}

	e := &Engine{
		log:      log.With("service", "lookup"),
		cfg:      cfg,
		routes:   routes,
		sources:  make(map[string]provider.Source, len(sources)),
		breakers: make(map[string]*circuitBreaker, len(sources)),
		limiters: make(map[string]*rate.Limiter, len(sources)),
	}

	for _, src := range sources {
		name := src.Name()
		e.sources[name] = src
		e.breakers[name] = newCircuitBreaker(cfg.CircuitFailureThreshold, cfg.CircuitWindow, cfg.CircuitCooldown)
		if cfg.RatePerSecond > 0 {
			e.limiters[name] = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
		}
	}

	e.outerDeadline = cfg.OuterDeadline
	if e.outerDeadline <= 0 {
		e.outerDeadline = cfg.WorstCaseCallWindow() + outerDeadlineGrace
	}

	e.cache = newResultCache(cacheCfg, store, e.log)

	return e
}

// Lookup resolves a raw query into an aggregated LookupResult.
//
// The returned error is non-nil only for a rejected query
// (domain.ErrInvalidQuery); every source-level failure is encoded in the
// result. An unset result error with empty sections means the sources
// were reached and had no matches.
func (e *Engine) Lookup(ctx context.Context, raw string) (domain.LookupResult, error) {
	q, err := domain.NormalizeQuery(raw, e.cfg.MaxQueryLength)
	if err != nil {
		return domain.LookupResult{}, err
	}
	ct := domain.Classify(q)

	id := uuid.NewString()
	ctx = ctxutil.WithLookupID(ctx, id)
	log := e.log.With(
		slog.String("lookup_id", id),
		slog.String("query", q.String()),
		slog.String("content_type", ct.String()),
	)

	log.DebugContext(ctx, "lookup started")
	start := time.Now()

	res := e.cache.getOrCompute(ctx, q.String(), func() domain.LookupResult {
		outcomes := e.dispatch(ctx, provider.Request{Query: q, ContentType: ct}, log)
		return aggregate(q, ct, outcomes)
	})

	if res.Err != nil {
		log.WarnContext(ctx, "lookup failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", res.Err.Error()),
		)
	} else {
		log.InfoContext(ctx, "lookup complete",
			slog.Duration("elapsed", time.Since(start)),
			slog.Int("definition_groups", len(res.Definitions)),
			slog.Bool("thesaurus", !res.Thesaurus.IsEmpty()),
			slog.Bool("summary", res.Summary != nil),
			slog.Bool("stale", res.Stale),
		)
	}

	return res, nil
}

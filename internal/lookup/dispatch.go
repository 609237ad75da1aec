package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

// dispatch fans one lookup out to every routed source concurrently and
// collects their outcomes. The whole join is bounded by the engine's
// outer deadline: sources still pending at the deadline are abandoned
// and reported as timeouts, and their eventual results are discarded.
func (e *Engine) dispatch(ctx context.Context, req provider.Request, log *slog.Logger) []Outcome {
	names := e.routes.routed(req.ContentType)

	ctx, cancel := context.WithTimeout(ctx, e.outerDeadline)
	defer cancel()

	ch := make(chan Outcome, len(names))
	launched := 0
	for _, name := range names {
		src, ok := e.sources[name]
		if !ok {
			log.ErrorContext(ctx, "routed source not registered", slog.String("source", name))
			continue
		}
		launched++
		go func(src provider.Source) {
			ch <- e.callSource(ctx, src, req, log)
		}(src)
	}

	byName := make(map[string]Outcome, launched)
collect:
	for i := 0; i < launched; i++ {
		select {
		case o := <-ch:
			byName[o.Source] = o
		case <-ctx.Done():
			break collect
		}
	}

	// Reassemble in routing-table order; completion order must not leak
	// into the aggregated result.
	outcomes := make([]Outcome, 0, launched)
	for _, name := range names {
		if _, ok := e.sources[name]; !ok {
			continue
		}
		o, ok := byName[name]
		if !ok {
			o = Outcome{
				Source: name,
				Status: StatusFailure,
				Err: domain.NewSourceError(name, domain.ErrKindTimeout,
					fmt.Errorf("abandoned at outer deadline %v", e.outerDeadline)),
			}
			log.WarnContext(ctx, "source abandoned at outer deadline",
				slog.String("source", name),
				slog.Duration("outer_deadline", e.outerDeadline),
			)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

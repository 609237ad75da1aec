package lookup

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

// callSource wraps one adapter with the full resilience policy, composed
// per attempt in this order: circuit check, rate limiter, timeout-bounded
// fetch, retry with exponential backoff and jitter, circuit bookkeeping.
// Every exit path yields exactly one Outcome; callers never see raw
// errors or retries.
func (e *Engine) callSource(ctx context.Context, src provider.Source, req provider.Request, log *slog.Logger) Outcome {
	name := src.Name()
	start := time.Now()

	br := e.breakers[name]
	if !br.allow() {
		log.DebugContext(ctx, "circuit open, skipping source", slog.String("source", name))
		return Outcome{
			Source:  name,
			Status:  StatusFailure,
			Err:     domain.NewSourceError(name, domain.ErrKindCircuitOpen, nil),
			Elapsed: time.Since(start),
		}
	}
	// When allow flipped the breaker to HalfOpen, this whole call (all of
	// its attempts) is the trial and holds the reservation.
	isTrial := br.currentState() == breakerHalfOpen

	var frag *domain.Fragment
	attempts := 0

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(e.cfg.MaxRetries) + 1),
		retry.Delay(e.cfg.BackoffBase),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return jitterDelay(retry.BackOffDelay(n, err, config), e.cfg.BackoffJitterFraction)
		}),
		retry.RetryIf(func(err error) bool {
			var se *domain.SourceError
			return errors.As(err, &se) && se.Kind.Retryable()
		}),
		retry.OnRetry(func(n uint, err error) {
			log.WarnContext(ctx, "source retry",
				slog.String("source", name),
				slog.Uint64("failed_attempt", uint64(n)+1),
				slog.String("error", err.Error()),
			)
		}),
	}

	err := retry.Do(func() error {
		// A breaker opened by a concurrent lookup mid-retry stops further
		// attempts. The trial call holds its own reservation and is exempt.
		if !isTrial && br.currentState() == breakerOpen {
			return domain.NewSourceError(name, domain.ErrKindCircuitOpen, nil)
		}

		attempts++
		if lim := e.limiters[name]; lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return domain.NewSourceError(name, domain.ErrKindTimeout, werr)
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.PerSourceTimeout)
		f, ferr := src.Fetch(attemptCtx, req)
		cancel()
		if ferr != nil {
			return normalizeSourceError(name, ferr)
		}
		frag = f
		return nil
	}, opts...)

	outcome := Outcome{Source: name, Attempts: attempts, Elapsed: time.Since(start)}

	// An outer-deadline cancellation means the dispatcher has abandoned
	// this call; its verdict is discarded and must not move breaker state.
	// An abandoned trial still frees its reservation, or the half-open
	// breaker would reject every later trial with no escape.
	abandoned := ctx.Err() != nil
	if abandoned && isTrial {
		br.releaseTrial()
	}

	if err != nil {
		se := normalizeSourceError(name, err)
		outcome.Err = se

		if se.Kind == domain.ErrKindNotFound {
			// Explicit negative answer: the source is reachable and
			// healthy, the query just has no entry there.
			outcome.Status = StatusEmpty
			if !abandoned {
				br.recordSuccess()
			}
			return outcome
		}

		outcome.Status = StatusFailure
		// A circuit-open exit made no adapter call; it is no new evidence.
		if !abandoned && se.Kind != domain.ErrKindCircuitOpen {
			br.recordFailure()
			if br.currentState() == breakerOpen {
				log.WarnContext(ctx, "circuit opened",
					slog.String("source", name),
					slog.Duration("cooldown", e.cfg.CircuitCooldown),
				)
			}
		}
		return outcome
	}

	if frag.IsEmpty() {
		outcome.Status = StatusEmpty
	} else {
		outcome.Status = StatusSuccess
		outcome.Fragment = frag
	}
	if !abandoned {
		br.recordSuccess()
	}
	return outcome
}

// jitterDelay perturbs delay by a uniform offset within ±fraction of it,
// so the jitter share stays proportional as backoff doubles.
func jitterDelay(delay time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || delay <= 0 {
		return delay
	}
	span := int64(float64(delay) * fraction)
	if span <= 0 {
		return delay
	}
	return delay + time.Duration(rand.Int63n(2*span+1)-span)
}

// normalizeSourceError guarantees a *domain.SourceError, classifying
// transport-level errors that escaped an adapter unmapped.
func normalizeSourceError(source string, err error) *domain.SourceError {
	var se *domain.SourceError
	if errors.As(err, &se) {
		return se
	}
	return provider.ClassifyTransportError(source, err)
}

package lookup

import (
	"sync"
	"time"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// circuitBreaker tracks consecutive failures for one source across all
// lookups. It is the only cross-lookup shared mutable state; one mutex
// per source keeps contention negligible.
//
// Lifecycle: Closed until threshold consecutive failures land within the
// rolling window, then Open for the cool-down. After the cool-down one
// trial call is permitted (HalfOpen); trial success closes the breaker,
// trial failure reopens it and restarts the cool-down.
type circuitBreaker struct {
	mu sync.Mutex

	threshold int
	window    time.Duration
	cooldown  time.Duration
	now       func() time.Time

	state       breakerState
	failures    int
	lastFailure time.Time
	openedAt    time.Time
	trialActive bool
}

func newCircuitBreaker(threshold int, window, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// allow reports whether a call may proceed. While HalfOpen it admits at
// most one in-flight trial call.
func (b *circuitBreaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.state = breakerHalfOpen
		b.trialActive = true
		return true
	default: // breakerHalfOpen
		if b.trialActive {
			return false
		}
		b.trialActive = true
		return true
	}
}

// recordSuccess resets the breaker. Empty results and explicit negative
// answers count as success: the source answered.
func (b *circuitBreaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = breakerClosed
	b.failures = 0
	b.trialActive = false
}

// releaseTrial frees the half-open reservation without applying a
// verdict, reverting to Open. Called when the trial call was abandoned
// at the outer deadline: the cool-down clock keeps its original start,
// so the next allow grants a fresh trial immediately.
func (b *circuitBreaker) releaseTrial() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen && b.trialActive {
		b.state = breakerOpen
		b.trialActive = false
	}
}

// recordFailure registers a terminal failure and flips the breaker to
// Open when the consecutive-failure threshold is crossed.
func (b *circuitBreaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()

	if b.state == breakerHalfOpen {
		// Failed trial: reopen and restart the cool-down.
		b.state = breakerOpen
		b.openedAt = now
		b.trialActive = false
		b.failures = 0
		return
	}
	if b.state == breakerOpen {
		return
	}

	if b.window > 0 && !b.lastFailure.IsZero() && now.Sub(b.lastFailure) > b.window {
		b.failures = 0
	}
	b.failures++
	b.lastFailure = now

	if b.failures >= b.threshold {
		b.state = breakerOpen
		b.openedAt = now
	}
}

// currentState is for logging and tests.
func (b *circuitBreaker) currentState() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Package lookup implements the orchestration engine: classification,
// source routing, resilient concurrent fan-out, and aggregation of
// partial results into one LookupResult.
package lookup

import (
	"time"

	"github.com/heartmarshall/quickdef/internal/domain"
)

// Status is the terminal state of one adapter invocation.
type Status string

const (
	// StatusSuccess means the source returned usable data.
	StatusSuccess Status = "SUCCESS"
	// StatusEmpty means the source was reached but had nothing: either a
	// successful empty payload or an explicit negative answer (NotFound,
	// kept in Err for diagnostics).
	StatusEmpty Status = "EMPTY"
	// StatusFailure means the source contributed nothing and counts
	// against the lookup's total-failure condition.
	StatusFailure Status = "FAILURE"
)

// Outcome is the resilience wrapper's one-per-source verdict for a
// lookup. Exactly one Outcome exists per routed source.
type Outcome struct {
	Source   string
	Status   Status
	Fragment *domain.Fragment
	Err      *domain.SourceError
	Attempts int
	Elapsed  time.Duration
}

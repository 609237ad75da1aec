// Package provider defines the contract between the lookup engine and
// external reference sources.
package provider

import (
	"context"

	"github.com/heartmarshall/quickdef/internal/domain"
)

// Canonical adapter names, used by the routing table and as the
// provenance label on fragments.
const (
	SourceFreeDict  = "freedict"
	SourceDatamuse  = "datamuse"
	SourceWikipedia = "wikipedia"
)

// Request is the read-only input to one adapter invocation.
type Request struct {
	Query       domain.Query
	ContentType domain.ContentType
}

// Source adapts one external provider to the engine's fragment model.
//
// Fetch must complete or fail within ctx's deadline and must encode every
// failure as a *domain.SourceError — callers never see raw transport
// errors. A (nil, nil) return means the source was reached and had no
// data. Adapters do not retry; the resilience wrapper owns retry policy.
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) (*domain.Fragment, error)
}

package lookup

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/heartmarshall/quickdef/internal/config"
	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testLookupConfig keeps retries and delays tight so failure paths stay fast.
func testLookupConfig() config.LookupConfig {
	return config.LookupConfig{
		MaxQueryLength:          256,
		PerSourceTimeout:        250 * time.Millisecond,
		MaxRetries:              0,
		BackoffBase:             time.Millisecond,
		BackoffJitterFraction:   0,
		CircuitFailureThreshold: 10,
		CircuitWindow:           time.Minute,
		CircuitCooldown:         time.Second,
		OuterDeadline:           2 * time.Second,
		RatePerSecond:           0,
	}
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{TTL: time.Minute, MaxEntries: 32}
}

// allRoutes routes every content type to the same ordered adapter set.
func allRoutes(names ...string) Routes {
	return Routes{
		domain.ContentTypeWord:   names,
		domain.ContentTypeEntity: names,
		domain.ContentTypeMixed:  names,
	}
}

func newTestEngine(t *testing.T, routes Routes, sources []provider.Source, mutate func(*config.LookupConfig)) *Engine {
	t.Helper()
	cfg := testLookupConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewEngine(testLogger(), cfg, testCacheConfig(), routes, sources, nil)
}

// stubSource is a scriptable in-memory adapter.
type stubSource struct {
	name  string
	delay time.Duration
	fn    func(req provider.Request) (*domain.Fragment, error)

	mu    sync.Mutex
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, req provider.Request) (*domain.Fragment, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, provider.ClassifyTransportError(s.name, ctx.Err())
		}
	}
	return s.fn(req)
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func defsFragment(source string, texts ...string) *domain.Fragment {
	group := &domain.DefinitionGroup{Source: source}
	for _, text := range texts {
		group.Definitions = append(group.Definitions, domain.Definition{Text: text})
	}
	return &domain.Fragment{Definitions: group}
}

func thesaurusFragment(source string, synonyms ...string) *domain.Fragment {
	return &domain.Fragment{Thesaurus: &domain.Thesaurus{Source: source, Synonyms: synonyms}}
}

func summaryFragment(source, title string) *domain.Fragment {
	return &domain.Fragment{Summary: &domain.Summary{Source: source, Title: title, Extract: title}}
}

func succeedWith(frag *domain.Fragment) func(provider.Request) (*domain.Fragment, error) {
	return func(provider.Request) (*domain.Fragment, error) { return frag, nil }
}

func failWith(source string, kind domain.ErrorKind) func(provider.Request) (*domain.Fragment, error) {
	return func(provider.Request) (*domain.Fragment, error) {
		return nil, domain.NewSourceError(source, kind, nil)
	}
}

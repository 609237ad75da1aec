// Package freedict adapts the FreeDictionary API into the engine's
// definition fragment model.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Source fetches definitions from the FreeDictionary API.
type Source struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSource creates a Source with the default FreeDictionary API URL.
// The client carries no own timeout; the caller bounds every call via ctx.
func NewSource(logger *slog.Logger) *Source {
	return NewSourceWithURL(defaultBaseURL, logger)
}

// NewSourceWithURL creates a Source with a custom base URL (for testing).
func NewSourceWithURL(baseURL string, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger.With("adapter", provider.SourceFreeDict),
	}
}

func (s *Source) Name() string { return provider.SourceFreeDict }

// Fetch looks up definitions for the query. A 404 from the API is an
// explicit NotFound; an empty entry list is a reached-but-empty result.
func (s *Source) Fetch(ctx context.Context, req provider.Request) (*domain.Fragment, error) {
	word := req.Query.String()
	reqURL := s.baseURL + "/" + url.PathEscape(word)

	s.log.DebugContext(ctx, "freedict request", slog.String("query", word))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindUnreachable, fmt.Errorf("create request: %w", err))
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.ClassifyTransportError(s.Name(), err)
	}
	defer resp.Body.Close()

	if serr := provider.ClassifyStatus(s.Name(), resp.StatusCode); serr != nil {
		return nil, serr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.ClassifyTransportError(s.Name(), fmt.Errorf("read body: %w", err))
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindMalformedResponse, fmt.Errorf("decode json: %w", err))
	}

	group := mapEntries(s.Name(), entries)

	s.log.DebugContext(ctx, "freedict response",
		slog.String("query", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("definitions", len(group.Definitions)),
	)

	if len(group.Definitions) == 0 {
		return nil, nil
	}
	return &domain.Fragment{Definitions: group}, nil
}

// mapEntries flattens the API entries (one per etymology) into a single
// source-attributed group, preserving provider order.
func mapEntries(source string, entries []apiEntry) *domain.DefinitionGroup {
	group := &domain.DefinitionGroup{Source: source}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			pos := meaning.PartOfSpeech
			for _, def := range meaning.Definitions {
				d := domain.Definition{Text: def.Definition}
				if pos != "" {
					posCopy := pos
					d.PartOfSpeech = &posCopy
				}
				if def.Example != "" {
					ex := def.Example
					d.Example = &ex
				}
				group.Definitions = append(group.Definitions, d)
			}
		}
	}

	return group
}

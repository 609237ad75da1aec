// Package datamuse adapts the Datamuse word-relation API into the
// engine's thesaurus fragment model.
package datamuse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

const (
	defaultBaseURL = "https://api.datamuse.com"

	// maxTermsPerRelation caps each synonym/antonym/related list; the
	// popup presentation has no use for Datamuse's full 100-term pages.
	maxTermsPerRelation = 12
)

// Source fetches synonym/antonym/related-term lists from Datamuse.
type Source struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSource creates a Source with the default Datamuse API URL.
func NewSource(logger *slog.Logger) *Source {
	return NewSourceWithURL(defaultBaseURL, logger)
}

// NewSourceWithURL creates a Source with a custom base URL (for testing).
func NewSourceWithURL(baseURL string, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger.With("adapter", provider.SourceDatamuse),
	}
}

func (s *Source) Name() string { return provider.SourceDatamuse }

// Fetch queries the rel_syn, rel_ant, and ml relations for the query.
// Datamuse has no negative response: an unknown word simply yields empty
// lists, which surfaces as a reached-but-empty result.
func (s *Source) Fetch(ctx context.Context, req provider.Request) (*domain.Fragment, error) {
	word := req.Query.String()

	synonyms, err := s.fetchRelation(ctx, "rel_syn", word)
	if err != nil {
		return nil, err
	}
	antonyms, err := s.fetchRelation(ctx, "rel_ant", word)
	if err != nil {
		return nil, err
	}
	related, err := s.fetchRelation(ctx, "ml", word)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "datamuse response",
		slog.String("query", word),
		slog.Int("synonyms", len(synonyms)),
		slog.Int("antonyms", len(antonyms)),
		slog.Int("related", len(related)),
	)

	thesaurus := &domain.Thesaurus{
		Source:   s.Name(),
		Synonyms: synonyms,
		Antonyms: antonyms,
		Related:  dropOverlap(related, synonyms),
	}
	if thesaurus.IsEmpty() {
		return nil, nil
	}
	return &domain.Fragment{Thesaurus: thesaurus}, nil
}

// fetchRelation performs one /words call for the given relation parameter
// and extracts the word list.
func (s *Source) fetchRelation(ctx context.Context, relation, word string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/words?%s=%s&max=%d", s.baseURL, relation, url.QueryEscape(word), maxTermsPerRelation)

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

	if !gjson.ValidBytes(body) {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindMalformedResponse, fmt.Errorf("%s: invalid json", relation))
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindMalformedResponse, fmt.Errorf("%s: expected array", relation))
	}

	var words []string
	for _, item := range parsed.Array() {
		if w := item.Get("word").String(); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

// dropOverlap removes terms already present in seen; the ml relation
// usually repeats the strongest synonyms.
func dropOverlap(terms, seen []string) []string {
	if len(terms) == 0 || len(seen) == 0 {
		return terms
	}
	known := make(map[string]struct{}, len(seen))
	for _, w := range seen {
		known[w] = struct{}{}
	}
	var out []string
	for _, w := range terms {
		if _, dup := known[w]; !dup {
			out = append(out, w)
		}
	}
	return out
}

// Package wikipedia adapts the Wikipedia REST summary endpoint into the
// engine's encyclopedic fragment model.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org/api/rest_v1/page/summary"
	defaultUserAgent = "quickdef/1.0 (https://github.com/heartmarshall/quickdef)"
)

// Source fetches page summaries from the Wikipedia REST API.
type Source struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewSource creates a Source against the English Wikipedia REST API.
func NewSource(logger *slog.Logger) *Source {
	return NewSourceWithURL(defaultBaseURL, logger)
}

// NewSourceWithURL creates a Source with a custom base URL (for testing).
func NewSourceWithURL(baseURL string, logger *slog.Logger) *Source {
	return &Source{
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{},
		log:        logger.With("adapter", provider.SourceWikipedia),
	}
}

// SetUserAgent overrides the User-Agent header sent to the API.
// Wikipedia asks API consumers to identify themselves.
func (s *Source) SetUserAgent(ua string) {
	if ua != "" {
		s.userAgent = ua
	}
}

func (s *Source) Name() string { return provider.SourceWikipedia }

// Fetch looks up the page summary for the query. Disambiguation pages
// count as reached-but-empty: there is no single article to summarize.
func (s *Source) Fetch(ctx context.Context, req provider.Request) (*domain.Fragment, error) {
	title := strings.ReplaceAll(req.Query.String(), " ", "_")
	reqURL := s.baseURL + "/" + url.PathEscape(title)

	s.log.DebugContext(ctx, "wikipedia request", slog.String("query", req.Query.String()))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindUnreachable, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", "application/json")

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

	var page apiSummary
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, domain.NewSourceError(s.Name(), domain.ErrKindMalformedResponse, fmt.Errorf("decode json: %w", err))
	}

	if page.Extract == "" || isDisambiguation(page) {
		s.log.DebugContext(ctx, "wikipedia no content",
			slog.String("query", req.Query.String()),
			slog.Bool("disambiguation", isDisambiguation(page)),
		)
		return nil, nil
	}

	summary := &domain.Summary{
		Source:     s.Name(),
		Title:      page.Title,
		Extract:    page.Extract,
		Paragraphs: splitParagraphs(page.Extract),
		URL:        page.ContentURLs.Desktop.Page,
	}
	if page.Thumbnail != nil && page.Thumbnail.Source != "" {
		img := page.Thumbnail.Source
		summary.ImageURL = &img
	}

	s.log.DebugContext(ctx, "wikipedia response",
		slog.String("query", req.Query.String()),
		slog.String("title", page.Title),
		slog.Int("paragraphs", len(summary.Paragraphs)),
	)

	return &domain.Fragment{Summary: summary}, nil
}

func isDisambiguation(page apiSummary) bool {
	if page.Type == "disambiguation" {
		return true
	}
	return strings.Contains(strings.ToLower(page.Extract), "may refer to")
}

func splitParagraphs(extract string) []string {
	var paragraphs []string
	for _, p := range strings.Split(extract, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/quickdef/internal/domain"
	"github.com/heartmarshall/quickdef/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func wordRequest(t *testing.T, raw string) provider.Request {
	t.Helper()
	q, err := domain.NormalizeQuery(raw, 0)
	if err != nil {
		t.Fatalf("normalize %q: %v", raw, err)
	}
	return provider.Request{Query: q, ContentType: domain.Classify(q)}
}

func fetchKind(t *testing.T, err error) domain.ErrorKind {
	t.Helper()
	var se *domain.SourceError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a SourceError", err)
	}
	return se.Kind
}

func TestSource_Fetch_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting.", "example": "She gave a cheerful hello."}
				]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting.", "example": "Hello, how are you?"},
					{"definition": "Used to attract attention.", "example": ""}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	frag, err := s.Fetch(context.Background(), wordRequest(t, "hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frag == nil || frag.Definitions == nil {
		t.Fatal("expected a definitions fragment")
	}

	group := frag.Definitions
	if group.Source != provider.SourceFreeDict {
		t.Errorf("Source = %q, want %q", group.Source, provider.SourceFreeDict)
	}

	// 3 definitions total: 1 noun + 2 interjection, provider order kept.
	if len(group.Definitions) != 3 {
		t.Fatalf("len(Definitions) = %d, want 3", len(group.Definitions))
	}

	d0 := group.Definitions[0]
	if d0.Text != "A greeting." {
		t.Errorf("Definitions[0].Text = %q, want %q", d0.Text, "A greeting.")
	}
	if d0.PartOfSpeech == nil || *d0.PartOfSpeech != "noun" {
		t.Errorf("Definitions[0].PartOfSpeech = %v, want %q", d0.PartOfSpeech, "noun")
	}
	if d0.Example == nil || *d0.Example != "She gave a cheerful hello." {
		t.Errorf("Definitions[0].Example = %v", d0.Example)
	}

	d2 := group.Definitions[2]
	if d2.PartOfSpeech == nil || *d2.PartOfSpeech != "interjection" {
		t.Errorf("Definitions[2].PartOfSpeech = %v, want %q", d2.PartOfSpeech, "interjection")
	}
	if d2.Example != nil {
		t.Errorf("Definitions[2].Example = %v, want nil", d2.Example)
	}
}

func TestSource_Fetch_MultipleEntries(t *testing.T) {
	t.Parallel()

	// Two entries (different etymologies) flatten into one group.
	body := `[
		{
			"word": "run",
			"meanings": [{
				"partOfSpeech": "verb",
				"definitions": [{"definition": "To move fast.", "example": "She runs every day."}]
			}]
		},
		{
			"word": "run",
			"meanings": [{
				"partOfSpeech": "noun",
				"definitions": [{"definition": "An act of running.", "example": ""}]
			}]
		}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	frag, err := s.Fetch(context.Background(), wordRequest(t, "run"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defs := frag.Definitions.Definitions
	if len(defs) != 2 {
		t.Fatalf("len(Definitions) = %d, want 2", len(defs))
	}
	if defs[0].PartOfSpeech == nil || *defs[0].PartOfSpeech != "verb" {
		t.Errorf("Definitions[0].PartOfSpeech = %v, want verb", defs[0].PartOfSpeech)
	}
	if defs[1].PartOfSpeech == nil || *defs[1].PartOfSpeech != "noun" {
		t.Errorf("Definitions[1].PartOfSpeech = %v, want noun", defs[1].PartOfSpeech)
	}
}

func TestSource_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	_, err := s.Fetch(context.Background(), wordRequest(t, "asdfxyz"))
	if got := fetchKind(t, err); got != domain.ErrKindNotFound {
		t.Errorf("kind = %s, want %s", got, domain.ErrKindNotFound)
	}
}

func TestSource_Fetch_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	_, err := s.Fetch(context.Background(), wordRequest(t, "hello"))
	if got := fetchKind(t, err); got != domain.ErrKindRateLimited {
		t.Errorf("kind = %s, want %s", got, domain.ErrKindRateLimited)
	}
}

func TestSource_Fetch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	_, err := s.Fetch(context.Background(), wordRequest(t, "fail"))
	if got := fetchKind(t, err); got != domain.ErrKindUnreachable {
		t.Errorf("kind = %s, want %s", got, domain.ErrKindUnreachable)
	}
}

func TestSource_Fetch_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not valid json`))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	_, err := s.Fetch(context.Background(), wordRequest(t, "bad"))
	if got := fetchKind(t, err); got != domain.ErrKindMalformedResponse {
		t.Errorf("kind = %s, want %s", got, domain.ErrKindMalformedResponse)
	}
}

func TestSource_Fetch_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	frag, err := s.Fetch(context.Background(), wordRequest(t, "empty"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frag != nil {
		t.Fatalf("expected nil fragment for an empty entry list, got %+v", frag)
	}
}

func TestSource_Fetch_EscapesQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/kick%20the%20bucket" {
			t.Errorf("unexpected path: %s", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewSourceWithURL(srv.URL, newTestLogger())
	if _, err := s.Fetch(context.Background(), wordRequest(t, "kick the bucket")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

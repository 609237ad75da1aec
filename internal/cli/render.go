package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/quickdef/internal/domain"
)

// renderText prints the result sections in their deterministic order:
// definition groups, thesaurus, summary.
func renderText(w io.Writer, res domain.LookupResult) {
	fmt.Fprintf(w, "Query: %s (%s)\n", res.Query, res.ContentType)
	if res.Stale {
		fmt.Fprintln(w, "(cached result; sources are currently unavailable)")
	}
	fmt.Fprintln(w)

	for _, group := range res.Definitions {
		fmt.Fprintf(w, "[definitions: %s]\n", group.Source)
		for _, def := range group.Definitions {
			if def.PartOfSpeech != nil && *def.PartOfSpeech != "" {
				fmt.Fprintf(w, "  - (%s) %s\n", *def.PartOfSpeech, def.Text)
			} else {
				fmt.Fprintf(w, "  - %s\n", def.Text)
			}
			if def.Example != nil && *def.Example != "" {
				fmt.Fprintf(w, "    Example: %s\n", *def.Example)
			}
		}
		fmt.Fprintln(w)
	}

	if t := res.Thesaurus; !t.IsEmpty() {
		fmt.Fprintf(w, "[thesaurus: %s]\n", t.Source)
		if len(t.Synonyms) > 0 {
			fmt.Fprintf(w, "  Synonyms: %s\n", strings.Join(t.Synonyms, ", "))
		}
		if len(t.Antonyms) > 0 {
			fmt.Fprintf(w, "  Antonyms: %s\n", strings.Join(t.Antonyms, ", "))
		}
		if len(t.Related) > 0 {
			fmt.Fprintf(w, "  Related: %s\n", strings.Join(t.Related, ", "))
		}
		fmt.Fprintln(w)
	}

	if s := res.Summary; s != nil {
		fmt.Fprintf(w, "[summary: %s] %s\n", s.Source, s.Title)
		for _, p := range s.Paragraphs {
			fmt.Fprintln(w, p)
		}
		if s.URL != "" {
			fmt.Fprintf(w, "URL: %s\n", s.URL)
		}
		fmt.Fprintln(w)
	}

	if res.Err == nil && res.IsEmpty() {
		fmt.Fprintln(w, "No matches found.")
	}
}

// jsonResult adds the error message to the wire form of a LookupResult.
type jsonResult struct {
	domain.LookupResult
	Error string `json:"error,omitempty"`
}

func renderJSON(w io.Writer, res domain.LookupResult) error {
	out := jsonResult{LookupResult: res, Error: res.ErrorMessage()}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

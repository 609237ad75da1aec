package domain

// Definition is one dictionary sense as returned by a definition-family
// source. Optional fields follow the provider's data, not ours.
type Definition struct {
	PartOfSpeech *string `json:"part_of_speech,omitempty"`
	Text         string  `json:"definition"`
	Example      *string `json:"example,omitempty"`
}

// DefinitionGroup keeps one source's definitions together, in the order
// the provider returned them. Groups from different sources are never
// flattened into one list; provenance stays visible.
type DefinitionGroup struct {
	Source      string       `json:"source"`
	Definitions []Definition `json:"definitions"`
}

// Thesaurus holds synonym/antonym/related-term lists from a thesaurus
// source.
type Thesaurus struct {
	Source   string   `json:"source"`
	Synonyms []string `json:"synonyms,omitempty"`
	Antonyms []string `json:"antonyms,omitempty"`
	Related  []string `json:"related,omitempty"`
}

func (t *Thesaurus) IsEmpty() bool {
	return t == nil || (len(t.Synonyms) == 0 && len(t.Antonyms) == 0 && len(t.Related) == 0)
}

// Summary is the single encyclopedic fragment of a lookup.
type Summary struct {
	Source     string   `json:"source"`
	Title      string   `json:"title"`
	Extract    string   `json:"extract"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	ImageURL   *string  `json:"image_url,omitempty"`
	URL        string   `json:"url,omitempty"`
}

// Fragment is one source's normalized contribution to a lookup. Exactly
// one slot is populated, depending on the adapter family.
type Fragment struct {
	Definitions *DefinitionGroup
	Thesaurus   *Thesaurus
	Summary     *Summary
}

// IsEmpty reports whether the fragment carries no usable data (a
// successfully reached source with nothing to say).
func (f *Fragment) IsEmpty() bool {
	if f == nil {
		return true
	}
	if f.Definitions != nil && len(f.Definitions.Definitions) > 0 {
		return false
	}
	if !f.Thesaurus.IsEmpty() {
		return false
	}
	return f.Summary == nil
}

// LookupResult is the aggregated outcome of one lookup. Section order is
// deterministic: definition groups in routing-table order, then the
// thesaurus, then the summary.
//
// Err is set only when every consulted source failed; partial success is
// success. An unset Err with all sections empty means "no matches found".
type LookupResult struct {
	Query       string            `json:"query"`
	ContentType ContentType       `json:"content_type"`
	Definitions []DefinitionGroup `json:"definitions,omitempty"`
	Thesaurus   *Thesaurus        `json:"thesaurus,omitempty"`
	Summary     *Summary          `json:"summary,omitempty"`

	// Stale marks a result served from cache after a total source
	// failure. Never persisted.
	Stale bool `json:"stale,omitempty"`

	Err error `json:"-"`
}

// IsEmpty reports whether no section carries data.
func (r LookupResult) IsEmpty() bool {
	return len(r.Definitions) == 0 && r.Thesaurus.IsEmpty() && r.Summary == nil
}

// ErrorMessage returns the aggregate failure message, or "" on success.
func (r LookupResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContentType tags a query with the kind of content it most likely
// refers to. It is derived once per lookup and drives source routing.
type ContentType string

const (
	// ContentTypeWord is a single common word ("ephemeral").
	ContentTypeWord ContentType = "WORD"
	// ContentTypeEntity is a proper-noun or named entity ("Artificial Intelligence").
	ContentTypeEntity ContentType = "ENTITY"
	// ContentTypeMixed is anything ambiguous: multi-word lowercase
	// phrases, numbers, punctuation.
	ContentTypeMixed ContentType = "MIXED"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeWord, ContentTypeEntity, ContentTypeMixed:
		return true
	}
	return false
}

// Classify assigns a ContentType to a normalized query. Deterministic and
// total: the same query always yields the same tag and no input fails.
//
// Policy, applied in order:
//  1. Two or more capitalized tokens, at least one of them beyond the
//     leading (sentence-start) position, mark a named entity.
//  2. A single token that is all lowercase, or lowercase after folding a
//     leading capital, is a common word. Tokens without letters (numbers,
//     punctuation) do not qualify.
//  3. Everything else is mixed.
func Classify(q Query) ContentType {
	tokens := strings.Fields(string(q))
	if len(tokens) == 0 {
		return ContentTypeMixed
	}

	capitalized := 0
	capitalizedBeyondFirst := false
	for i, tok := range tokens {
		if startsUpper(tok) {
			capitalized++
			if i > 0 {
				capitalizedBeyondFirst = true
			}
		}
	}
	if capitalized >= 2 && capitalizedBeyondFirst {
		return ContentTypeEntity
	}

	if len(tokens) == 1 && isFoldableWord(tokens[0]) {
		return ContentTypeWord
	}

	return ContentTypeMixed
}

func startsUpper(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsUpper(r)
}

// isFoldableWord reports whether token is a lowercase word, allowing a
// single leading capital (sentence-start artifact from text capture).
func isFoldableWord(token string) bool {
	hasLetter := false
	for i, r := range token {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsUpper(r) && i > 0 {
			return false
		}
	}
	return hasLetter
}

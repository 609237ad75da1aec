package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxQueryLength bounds normalized queries when no explicit
// limit is configured.
const DefaultMaxQueryLength = 256

// Query is a normalized lookup query: trimmed, internal whitespace
// collapsed to single spaces, non-empty, bounded length. Case is
// preserved so classification can inspect capitalization.
type Query string

func (q Query) String() string { return string(q) }

// NormalizeQuery prepares raw user input for a lookup:
//   - trims leading/trailing whitespace
//   - collapses internal whitespace runs into single spaces
//
// It returns ErrInvalidQuery (wrapped) if the result is empty or longer
// than maxLen. A maxLen <= 0 falls back to DefaultMaxQueryLength.
// Pure function, no side effects.
func NormalizeQuery(raw string, maxLen int) (Query, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxQueryLength
	}

	normalized := strings.Join(strings.Fields(raw), " ")
	if normalized == "" {
		return "", fmt.Errorf("%w: empty after normalization", ErrInvalidQuery)
	}
	// Length is bounded in characters, not bytes.
	if n := utf8.RuneCountInString(normalized); n > maxLen {
		return "", fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInvalidQuery, n, maxLen)
	}

	return Query(normalized), nil
}

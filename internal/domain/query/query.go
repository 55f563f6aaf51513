package query

import (
	"strings"
	"unicode/utf8"

	"github.com/tripdesk-cloud/placedex/internal/domain"
)

// MinLength is the minimum query length (in runes) that triggers a
// provider lookup. Shorter queries produce an empty suggestion list.
const MinLength = 2

// Query is a validated free-text search query (immutable value object).
type Query struct {
	text string
}

// New trims and validates the raw input text.
func New(text string) (Query, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Query{}, domain.ErrInvalidQuery
	}
	return Query{text: trimmed}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// TooShort reports whether the query is below the lookup threshold.
func (q Query) TooShort() bool {
	return utf8.RuneCountInString(q.text) < MinLength
}

// Normalized returns the canonical cache-key form: lowercased with
// runs of whitespace collapsed to single spaces.
func (q Query) Normalized() string {
	return strings.Join(strings.Fields(strings.ToLower(q.text)), " ")
}

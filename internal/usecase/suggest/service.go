package suggest

import (
	"context"
	"fmt"

	"github.com/tripdesk-cloud/placedex/internal/domain/query"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
)

// Service handles autocomplete queries.
type Service struct {
	provider Provider
}

// New creates a suggest service.
func New(provider Provider) *Service {
	return &Service{provider: provider}
}

// Suggest resolves free text into an ordered suggestion list.
// Queries below the minimum length return an empty list without a provider
// call; empty input is rejected. The returned list replaces any previous
// one wholesale and preserves provider order.
func (s *Service) Suggest(
	ctx context.Context, text, types, session string,
) ([]suggestion.Suggestion, error) {
	q, err := query.New(text)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	if q.TooShort() {
		return nil, nil
	}

	list, err := s.provider.Suggest(ctx, q, types, session)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	return list, nil
}

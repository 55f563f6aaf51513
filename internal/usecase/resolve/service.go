package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripdesk-cloud/placedex/internal/domain"
	"github.com/tripdesk-cloud/placedex/internal/domain/place"
)

// Service handles detail resolution for a chosen suggestion.
type Service struct {
	provider Provider
}

// New creates a resolve service.
func New(provider Provider) *Service {
	return &Service{provider: provider}
}

// Resolve fetches the full place record for a place ID.
func (s *Service) Resolve(ctx context.Context, id, session string) (place.Place, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return place.Place{}, fmt.Errorf("place ID is required: %w", domain.ErrInvalidQuery)
	}

	p, err := s.provider.Resolve(ctx, id, session)
	if err != nil {
		return place.Place{}, fmt.Errorf("resolve place: %w", err)
	}
	return p, nil
}

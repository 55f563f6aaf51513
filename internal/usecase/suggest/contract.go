package suggest

import (
	"context"

	"github.com/tripdesk-cloud/placedex/internal/domain/query"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
)

// Provider fetches autocomplete predictions from a places source.
type Provider interface {
	Suggest(ctx context.Context, q query.Query, types, session string) ([]suggestion.Suggestion, error)
}

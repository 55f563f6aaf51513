package resolve

import (
	"context"

	"github.com/tripdesk-cloud/placedex/internal/domain/place"
)

// Provider fetches full place records from a places source.
type Provider interface {
	Resolve(ctx context.Context, id, session string) (place.Place, error)
}

package placedex

import "errors"

// Sentinel errors returned by the Client. Use errors.Is() to check.
var (
	// ErrNotFound signals an unknown place ID.
	ErrNotFound = errors.New("placedex: place not found")
	// ErrInvalidRequest signals a request the API rejected.
	ErrInvalidRequest = errors.New("placedex: invalid request")
	// ErrRateLimited signals an API rate limit hit.
	ErrRateLimited = errors.New("placedex: rate limited")
	// ErrUnavailable signals a transport failure or server-side error.
	ErrUnavailable = errors.New("placedex: service unavailable")
)

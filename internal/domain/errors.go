package domain

import "errors"

var (
	// ErrNotFound signals an unknown place ID.
	ErrNotFound = errors.New("place not found")
	// ErrInvalidQuery signals an empty or malformed query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUpstreamUnavailable signals a failure of the upstream places provider.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	// ErrRateLimited signals an upstream quota or rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

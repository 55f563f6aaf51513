package suggestion

import "fmt"

// Suggestion is a lightweight candidate match returned by the autocomplete
// endpoint (immutable value object). Order within a response is source order.
type Suggestion struct {
	placeID   string
	primary   string
	secondary string
}

// New validates and creates a Suggestion.
func New(placeID, primary, secondary string) (Suggestion, error) {
	if placeID == "" {
		return Suggestion{}, fmt.Errorf("place ID is required")
	}
	if primary == "" {
		return Suggestion{}, fmt.Errorf("primary label is required")
	}
	return Suggestion{placeID: placeID, primary: primary, secondary: secondary}, nil
}

// Reconstruct creates a Suggestion without validation (cache hydration).
func Reconstruct(placeID, primary, secondary string) Suggestion {
	return Suggestion{placeID: placeID, primary: primary, secondary: secondary}
}

// PlaceID returns the opaque place identifier.
func (s *Suggestion) PlaceID() string { return s.placeID }

// Primary returns the main display label.
func (s *Suggestion) Primary() string { return s.primary }

// Secondary returns the optional secondary label (may be empty).
func (s *Suggestion) Secondary() string { return s.secondary }

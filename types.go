package placedex

// Suggestion is a lightweight candidate match from the autocomplete endpoint.
type Suggestion struct {
	// PlaceID is the opaque identifier used to resolve the full record.
	PlaceID string `json:"place_id"`
	// Primary is the main display label.
	Primary string `json:"main_text"`
	// Secondary is an optional secondary label (region, country).
	Secondary string `json:"secondary_text,omitempty"`
}

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceDetail is the fully resolved place record for a chosen suggestion.
type PlaceDetail struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Location    *LatLng  `json:"location,omitempty"`
}

package place

import (
	"fmt"

	"github.com/tripdesk-cloud/placedex/internal/domain/geo"
)

// MaxDescriptionSize is the maximum descriptive text size in bytes.
const MaxDescriptionSize = 16384 // 16KB

// Place is the fully resolved place record (immutable value object).
// Created from an upstream detail response or rehydrated from cache.
type Place struct {
	id          string
	name        string
	address     string
	phone       string
	website     string
	tags        []string
	description string
	photos      []string
	location    geo.Point
	hasLocation bool
}

// New validates and creates a Place.
func New(
	id, name, address, phone, website string,
	tags []string, description string, photos []string,
) (Place, error) {
	if id == "" {
		return Place{}, fmt.Errorf("place ID is required")
	}
	if name == "" {
		return Place{}, fmt.Errorf("place name is required")
	}
	if len(description) > MaxDescriptionSize {
		return Place{}, fmt.Errorf("description too large (max %d bytes)", MaxDescriptionSize)
	}

	return Place{
		id:          id,
		name:        name,
		address:     address,
		phone:       phone,
		website:     website,
		tags:        cloneStrings(tags),
		description: description,
		photos:      cloneStrings(photos),
	}, nil
}

// Reconstruct creates a Place without validation (cache hydration).
func Reconstruct(
	id, name, address, phone, website string,
	tags []string, description string, photos []string,
	location geo.Point, hasLocation bool,
) Place {
	return Place{
		id: id, name: name, address: address, phone: phone, website: website,
		tags: tags, description: description, photos: photos,
		location: location, hasLocation: hasLocation,
	}
}

// ID returns the opaque place identifier.
func (p *Place) ID() string { return p.id }

// Name returns the place name.
func (p *Place) Name() string { return p.name }

// Address returns the formatted address.
func (p *Place) Address() string { return p.address }

// Phone returns the contact phone number.
func (p *Place) Phone() string { return p.phone }

// Website returns the place website URL.
func (p *Place) Website() string { return p.website }

// Tags returns the classification tags.
func (p *Place) Tags() []string { return p.tags }

// Description returns the descriptive text.
func (p *Place) Description() string { return p.description }

// Photos returns the photo references.
func (p *Place) Photos() []string { return p.photos }

// Location returns the geocoordinate and whether one is present.
func (p *Place) Location() (geo.Point, bool) { return p.location, p.hasLocation }

// WithLocation returns a copy with the given coordinate set.
func (p *Place) WithLocation(pt geo.Point) Place {
	c := *p
	c.location = pt
	c.hasLocation = true
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

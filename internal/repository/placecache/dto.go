package placecache

import (
	"github.com/tripdesk-cloud/placedex/internal/domain/geo"
	"github.com/tripdesk-cloud/placedex/internal/domain/place"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
)

// suggestionDTO is the cache representation of a suggestion.
type suggestionDTO struct {
	PlaceID   string `json:"place_id"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// placeDTO is the cache representation of a place record.
type placeDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	HasLocation bool     `json:"has_location"`
}

func suggestionsToDTO(list []suggestion.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, len(list))
	for i := range list {
		out[i] = suggestionDTO{
			PlaceID:   list[i].PlaceID(),
			Primary:   list[i].Primary(),
			Secondary: list[i].Secondary(),
		}
	}
	return out
}

func suggestionsFromDTO(dtos []suggestionDTO) []suggestion.Suggestion {
	out := make([]suggestion.Suggestion, len(dtos))
	for i, d := range dtos {
		out[i] = suggestion.Reconstruct(d.PlaceID, d.Primary, d.Secondary)
	}
	return out
}

func placeToDTO(p *place.Place) placeDTO {
	dto := placeDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Address:     p.Address(),
		Phone:       p.Phone(),
		Website:     p.Website(),
		Tags:        p.Tags(),
		Description: p.Description(),
		Photos:      p.Photos(),
	}
	if pt, ok := p.Location(); ok {
		dto.Lat = pt.Lat()
		dto.Lng = pt.Lng()
		dto.HasLocation = true
	}
	return dto
}

func placeFromDTO(d placeDTO) place.Place {
	return place.Reconstruct(
		d.ID, d.Name, d.Address, d.Phone, d.Website,
		d.Tags, d.Description, d.Photos,
		geo.Reconstruct(d.Lat, d.Lng), d.HasLocation,
	)
}

package catalog

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Record is the boundary shape for restaurant data arriving from external
// sources (place search, seed scripts, API clients). Records are validated
// here and converted to a Restaurant before they reach the scorer — partial
// or untyped data never flows into the scoring algorithm itself.
type Record struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name" validate:"required"`
	Address          string   `json:"address,omitempty"`
	Lat              float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng              float64  `json:"lng" validate:"gte=-180,lte=180"`
	CuisineTypes     []string `json:"cuisine_types,omitempty"`
	PriceMin         int      `json:"price_min" validate:"gte=0"`
	PriceMax         int      `json:"price_max" validate:"gtfield=PriceMin"`
	Quietness        *float64 `json:"quietness,omitempty" validate:"omitempty,gte=0,lte=100"`
	ServiceSpeed     string   `json:"service_speed,omitempty" validate:"omitempty,oneof=fast medium slow"`
	Atmosphere       string   `json:"atmosphere,omitempty" validate:"omitempty,oneof=casual upscale energetic intimate"`
	PrivateBooths    bool     `json:"private_booths,omitempty"`
	WalkableDistance bool     `json:"walkable_distance,omitempty"`

	IdealMeetingTypes []string `json:"ideal_meeting_types,omitempty" validate:"omitempty,dive,oneof=casual-checkin investor-lunch team-meeting client-meeting post-event-debrief one-on-one social-lunch"`

	RatingAverage float64 `json:"rating_average,omitempty" validate:"gte=0,lte=5"`
	RatingCount   int     `json:"rating_count,omitempty" validate:"gte=0"`
}

// Validate checks the record against the catalog invariants.
func (r *Record) Validate() error {
	return validate.Struct(r)
}

// Restaurant converts a validated record into the typed catalog entry.
func (r *Record) Restaurant() Restaurant {
	meetings := make([]MeetingType, 0, len(r.IdealMeetingTypes))
	for _, m := range r.IdealMeetingTypes {
		meetings = append(meetings, MeetingType(m))
	}

	return Restaurant{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		Coordinates:  Coordinates{Lat: r.Lat, Lng: r.Lng},
		CuisineTypes: r.CuisineTypes,
		PriceRange:   PriceRange{Min: r.PriceMin, Max: r.PriceMax},
		Attributes: Attributes{
			Quietness:         r.Quietness,
			ServiceSpeed:      ServiceSpeed(r.ServiceSpeed),
			Atmosphere:        Atmosphere(r.Atmosphere),
			PrivateBooths:     r.PrivateBooths,
			WalkableDistance:  r.WalkableDistance,
			IdealMeetingTypes: meetings,
		},
		Rating: Rating{Average: r.RatingAverage, Count: r.RatingCount},
	}
}

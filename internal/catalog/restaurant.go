package catalog

import "strings"

// MeetingType is a closed tag describing the social context a restaurant
// is being chosen for.
type MeetingType string

const (
	MeetingCasualCheckin    MeetingType = "casual-checkin"
	MeetingInvestorLunch    MeetingType = "investor-lunch"
	MeetingTeamMeeting      MeetingType = "team-meeting"
	MeetingClientMeeting    MeetingType = "client-meeting"
	MeetingPostEventDebrief MeetingType = "post-event-debrief"
	MeetingOneOnOne         MeetingType = "one-on-one"
	MeetingSocialLunch      MeetingType = "social-lunch"
)

// MeetingTypes returns all valid meeting types.
func MeetingTypes() []MeetingType {
	return []MeetingType{
		MeetingCasualCheckin, MeetingInvestorLunch, MeetingTeamMeeting,
		MeetingClientMeeting, MeetingPostEventDebrief, MeetingOneOnOne,
		MeetingSocialLunch,
	}
}

// Valid reports whether m is one of the known meeting types.
func (m MeetingType) Valid() bool {
	for _, known := range MeetingTypes() {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form of the meeting type, with hyphens
// replaced by spaces ("investor-lunch" -> "investor lunch").
func (m MeetingType) Label() string {
	return strings.ReplaceAll(string(m), "-", " ")
}

type ServiceSpeed string

const (
	SpeedFast   ServiceSpeed = "fast"
	SpeedMedium ServiceSpeed = "medium"
	SpeedSlow   ServiceSpeed = "slow"
)

type Atmosphere string

const (
	AtmosphereCasual    Atmosphere = "casual"
	AtmosphereUpscale   Atmosphere = "upscale"
	AtmosphereEnergetic Atmosphere = "energetic"
	AtmosphereIntimate  Atmosphere = "intimate"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether price falls inside the range, inclusive on both ends.
func (pr PriceRange) Contains(price float64) bool {
	return price >= float64(pr.Min) && price <= float64(pr.Max)
}

// Attributes describes the scoring-relevant features of a restaurant.
// Optional enrichment — nil/empty means the feature is unknown and the
// matching rule simply does not fire.
type Attributes struct {
	Quietness         *float64      `json:"quietness,omitempty"`
	ServiceSpeed      ServiceSpeed  `json:"service_speed,omitempty"`
	Atmosphere        Atmosphere    `json:"atmosphere,omitempty"`
	PrivateBooths     bool          `json:"private_booths"`
	WalkableDistance  bool          `json:"walkable_distance"`
	IdealMeetingTypes []MeetingType `json:"ideal_meeting_types,omitempty"`
}

// SuitsMeeting reports whether the restaurant is flagged as ideal for the
// given meeting type. A missing set matches nothing.
func (a Attributes) SuitsMeeting(m MeetingType) bool {
	for _, mt := range a.IdealMeetingTypes {
		if mt == m {
			return true
		}
	}
	return false
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Restaurant is a catalog entry. Read-only input from the scorer's point
// of view.
type Restaurant struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Address      string      `json:"address,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
	CuisineTypes []string    `json:"cuisine_types,omitempty"`
	PriceRange   PriceRange  `json:"price_range"`
	Attributes   Attributes  `json:"attributes"`
	Rating       Rating      `json:"rating"`
}

// AvgPrice returns the midpoint of the restaurant's price range.
func (r Restaurant) AvgPrice() float64 {
	return float64(r.PriceRange.Min+r.PriceRange.Max) / 2
}

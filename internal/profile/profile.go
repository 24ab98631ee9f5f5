package profile

import (
	"fmt"
	"math"
	"time"

	"github.com/forkcast-app/forkcast/internal/catalog"
)

// Defaults for a brand-new profile. Every fallback in the system goes
// through DefaultProfile so the default shape is identical everywhere.
const (
	DefaultPreference = 50.0
	DefaultPriceMin   = 10
	DefaultPriceMax   = 100
)

// Preferences is the five-dimensional taste vector. Each scalar lies in
// [0,100].
type Preferences struct {
	Quietness      float64 `json:"quietness"`
	ServiceQuality float64 `json:"service_quality"`
	Healthiness    float64 `json:"healthiness"`
	Value          float64 `json:"value"`
	Atmosphere     float64 `json:"atmosphere"`
}

// Clamped returns the preferences with every scalar clamped to [0,100].
func (p Preferences) Clamped() Preferences {
	return Preferences{
		Quietness:      clamp(p.Quietness, 0, 100),
		ServiceQuality: clamp(p.ServiceQuality, 0, 100),
		Healthiness:    clamp(p.Healthiness, 0, 100),
		Value:          clamp(p.Value, 0, 100),
		Atmosphere:     clamp(p.Atmosphere, 0, 100),
	}
}

// Finite reports whether every scalar is a real number (no NaN/Inf).
func (p Preferences) Finite() bool {
	for _, v := range []float64{p.Quietness, p.ServiceQuality, p.Healthiness, p.Value, p.Atmosphere} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LearningData tracks how much rating history has flowed into a profile.
type LearningData struct {
	TotalRatings  int       `json:"total_ratings"`
	AverageRating float64   `json:"average_rating"`
	LastUpdated   time.Time `json:"last_updated"`
}

// TasteProfile is one user's preference vector plus cuisine/price filters.
type TasteProfile struct {
	UserID       string             `json:"user_id"`
	Preferences  Preferences        `json:"preferences"`
	CuisineTypes []string           `json:"cuisine_types"`
	PriceRange   catalog.PriceRange `json:"price_range"`
	Learning     LearningData       `json:"learning_data"`
}

// DefaultProfile returns the canonical default profile for a user: all
// preferences at 50, no cuisines, price range 10–100, zero-valued learning
// data. Two calls with the same userID produce identical values.
func DefaultProfile(userID string) TasteProfile {
	return TasteProfile{
		UserID: userID,
		Preferences: Preferences{
			Quietness:      DefaultPreference,
			ServiceQuality: DefaultPreference,
			Healthiness:    DefaultPreference,
			Value:          DefaultPreference,
			Atmosphere:     DefaultPreference,
		},
		CuisineTypes: []string{},
		PriceRange:   catalog.PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
	}
}

// CuisineSet returns the cuisine types as a membership set.
func (p TasteProfile) CuisineSet() map[string]bool {
	set := make(map[string]bool, len(p.CuisineTypes))
	for _, c := range p.CuisineTypes {
		set[c] = true
	}
	return set
}

// ApplyRating folds one new rating into the profile's learning data as a
// running mean, keeping the average inside [0,5].
func (p *TasteProfile) ApplyRating(value float64, now time.Time) {
	value = clamp(value, 0, 5)
	n := float64(p.Learning.TotalRatings)
	p.Learning.AverageRating = clamp((p.Learning.AverageRating*n+value)/(n+1), 0, 5)
	p.Learning.TotalRatings++
	p.Learning.LastUpdated = now
}

// Validate checks the profile invariants: finite preference scalars and a
// non-degenerate price range.
func (p TasteProfile) Validate() error {
	if !p.Preferences.Finite() {
		return fmt.Errorf("profile %s: preferences must be finite", p.UserID)
	}
	if p.PriceRange.Min >= p.PriceRange.Max {
		return fmt.Errorf("profile %s: price range min %d must be below max %d", p.UserID, p.PriceRange.Min, p.PriceRange.Max)
	}
	return nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

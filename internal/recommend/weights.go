package recommend

import "fmt"

// BonusSet defines the points each scoring rule contributes. Values are
// additive; there is no normalization.
type BonusSet struct {
	Favorite         int
	FriendPick       int
	QuietnessMatch   int
	PriceMatch       int
	CuisineMatch     int
	MeetingTypeMatch int
	ProximityNear    int
	ProximityNearby  int
	HighRating       int
	Fallback         int
	GroupFit         int
}

// DefaultBonuses returns the standard point distribution.
func DefaultBonuses() BonusSet {
	return BonusSet{
		Favorite:         50,
		FriendPick:       40,
		QuietnessMatch:   15,
		PriceMatch:       10,
		CuisineMatch:     10,
		MeetingTypeMatch: 20,
		ProximityNear:    15,
		ProximityNearby:  10,
		HighRating:       10,
		Fallback:         5,
		GroupFit:         30,
	}
}

// Validate checks that no bonus is negative and that the fallback is
// positive, so every recommendation carries a non-zero score.
func (b BonusSet) Validate() error {
	for _, v := range b.asList() {
		if v < 0 {
			return fmt.Errorf("negative bonus: %d", v)
		}
	}
	if b.Fallback <= 0 {
		return fmt.Errorf("fallback bonus must be positive, got %d", b.Fallback)
	}
	return nil
}

func (b BonusSet) asList() []int {
	return []int{
		b.Favorite, b.FriendPick, b.QuietnessMatch, b.PriceMatch,
		b.CuisineMatch, b.MeetingTypeMatch, b.ProximityNear,
		b.ProximityNearby, b.HighRating, b.Fallback, b.GroupFit,
	}
}

package recommend

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

// MatchType is the dominant reason category assigned to a recommendation.
// When several apply, the last rule to fire wins.
type MatchType string

const (
	MatchPersonalFavorite     MatchType = "personal-favorite"
	MatchFriendRecommendation MatchType = "friend-recommendation"
	MatchSmartMatch           MatchType = "smart-match"
	MatchTrending             MatchType = "trending"
)

const (
	// DefaultLimit caps the recommendation list when the caller does not
	// supply one.
	DefaultLimit = 20
	// GroupLimit caps group-aggregated recommendation lists.
	GroupLimit = 10
	// MaxReasons caps the explanation list; earlier-firing rules win.
	MaxReasons = 3

	quietnessBand      = 20.0 // personal quietness affinity, |Δ| strictly below
	groupQuietnessBand = 25.0 // group-fit quietness tolerance
	nearKm             = 1.0
	nearbyKm           = 5.0
	qualityThreshold   = 4.0
)

// Reason strings appended by the scoring rules, in rule order.
const (
	ReasonFavorite   = "One of your favorites"
	ReasonFriendPick = "Recommended by friends"
	ReasonQuietness  = "Matches your preference for quietness"
	ReasonPrice      = "Within your price range"
	ReasonCuisine    = "Matches your cuisine preferences"
	ReasonVeryClose  = "Very close to you"
	ReasonNearby     = "Nearby"
	ReasonHighRating = "Highly rated"
	ReasonFallback   = "Recommended for you"
	ReasonGroupFit   = "Suitable for all participants"
)

var (
	ErrInvalidLimit       = errors.New("limit must be non-negative")
	ErrInvalidPreferences = errors.New("profile preferences must be finite")
	ErrInvalidLocation    = errors.New("user location must be finite")
)

// Recommendation is the scored, explained output for one catalog entry.
type Recommendation struct {
	Restaurant catalog.Restaurant `json:"restaurant"`
	Score      int                `json:"score"`
	Reasons    []string           `json:"reasons"`
	MatchType  MatchType          `json:"match_type"`
}

// Options carries the per-request context for a scoring call. Nil maps and
// zero values mean the corresponding signal is absent.
type Options struct {
	FavoriteIDs          map[string]bool
	FriendRecommendedIDs map[string]bool
	TrendingIDs          map[string]bool
	MeetingType          catalog.MeetingType
	UserLocation         *catalog.Coordinates
	Limit                int
}

// Scorer ranks a restaurant catalog against one taste profile.
type Scorer struct {
	bonuses BonusSet
	logger  *slog.Logger
}

func NewScorer(bonuses BonusSet, logger *slog.Logger) *Scorer {
	return &Scorer{bonuses: bonuses, logger: logger}
}

// Score computes a ranked, explained recommendation list. Each restaurant
// is scored independently; the result is sorted by score descending with
// ties preserving catalog order, then truncated to the limit (default 20).
// Pure: identical inputs yield identical output.
func (s *Scorer) Score(p profile.TasteProfile, restaurants []catalog.Restaurant, opts Options) ([]Recommendation, error) {
	if err := validateInputs(p, opts); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	cuisines := p.CuisineSet()
	recs := make([]Recommendation, 0, len(restaurants))
	for _, r := range restaurants {
		recs = append(recs, s.scoreOne(p, cuisines, r, opts))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// scoreOne applies the scoring rules to a single restaurant, in fixed
// order. Rule order matters twice: matchType is last-rule-wins, and the
// reason list keeps the first three reasons in firing order.
func (s *Scorer) scoreOne(p profile.TasteProfile, cuisines map[string]bool, r catalog.Restaurant, opts Options) Recommendation {
	rec := Recommendation{Restaurant: r, MatchType: MatchSmartMatch}

	if opts.FavoriteIDs[r.ID] {
		rec.Score += s.bonuses.Favorite
		rec.Reasons = append(rec.Reasons, ReasonFavorite)
		rec.MatchType = MatchPersonalFavorite
	}
	// Evaluated after the favorite rule, so a restaurant that is both a
	// favorite and a friend pick ends up friend-recommendation.
	if opts.FriendRecommendedIDs[r.ID] {
		rec.Score += s.bonuses.FriendPick
		rec.Reasons = append(rec.Reasons, ReasonFriendPick)
		rec.MatchType = MatchFriendRecommendation
	}

	if r.Attributes.Quietness != nil && math.Abs(p.Preferences.Quietness-*r.Attributes.Quietness) < quietnessBand {
		rec.Score += s.bonuses.QuietnessMatch
		rec.Reasons = append(rec.Reasons, ReasonQuietness)
	}

	if p.PriceRange.Contains(r.AvgPrice()) {
		rec.Score += s.bonuses.PriceMatch
		rec.Reasons = append(rec.Reasons, ReasonPrice)
	}

	for _, c := range r.CuisineTypes {
		if cuisines[c] {
			rec.Score += s.bonuses.CuisineMatch
			rec.Reasons = append(rec.Reasons, ReasonCuisine)
			break
		}
	}

	if opts.MeetingType != "" && r.Attributes.SuitsMeeting(opts.MeetingType) {
		rec.Score += s.bonuses.MeetingTypeMatch
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Perfect for %s", opts.MeetingType.Label()))
	}

	if opts.UserLocation != nil {
		// Bands are exclusive: only the closer one applies.
		switch d := DistanceKm(*opts.UserLocation, r.Coordinates); {
		case d < nearKm:
			rec.Score += s.bonuses.ProximityNear
			rec.Reasons = append(rec.Reasons, ReasonVeryClose)
		case d < nearbyKm:
			rec.Score += s.bonuses.ProximityNearby
			rec.Reasons = append(rec.Reasons, ReasonNearby)
		}
	}

	if r.Rating.Average >= qualityThreshold {
		rec.Score += s.bonuses.HighRating
		rec.Reasons = append(rec.Reasons, ReasonHighRating)
	}

	// Every recommendation carries an explanation.
	if len(rec.Reasons) == 0 {
		rec.Score += s.bonuses.Fallback
		rec.Reasons = append(rec.Reasons, ReasonFallback)
	}

	if rec.MatchType == MatchSmartMatch && opts.TrendingIDs[r.ID] {
		rec.MatchType = MatchTrending
	}

	if len(rec.Reasons) > MaxReasons {
		rec.Reasons = rec.Reasons[:MaxReasons]
	}
	return rec
}

func validateInputs(p profile.TasteProfile, opts Options) error {
	if opts.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, opts.Limit)
	}
	if !p.Preferences.Finite() {
		return fmt.Errorf("%w: user %q", ErrInvalidPreferences, p.UserID)
	}
	if loc := opts.UserLocation; loc != nil {
		if math.IsNaN(loc.Lat) || math.IsInf(loc.Lat, 0) || math.IsNaN(loc.Lng) || math.IsInf(loc.Lng, 0) {
			return ErrInvalidLocation
		}
	}
	return nil
}

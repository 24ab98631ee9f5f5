package recommend

import (
	"math"
	"sort"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

// MergeProfiles builds a synthetic group profile: each preference scalar is
// the arithmetic mean across all profiles, cuisines are the union, and the
// price range is the most conservative intersection (max of minimums, min
// of maximums). A disjoint intersection (min >= max) is passed through
// as-is; downstream price matching then simply never fires.
func MergeProfiles(profiles []profile.TasteProfile) profile.TasteProfile {
	if len(profiles) == 0 {
		return profile.TasteProfile{}
	}

	merged := profile.TasteProfile{
		CuisineTypes: []string{},
		PriceRange:   profiles[0].PriceRange,
	}

	seen := make(map[string]bool)
	n := float64(len(profiles))
	for _, p := range profiles {
		merged.Preferences.Quietness += p.Preferences.Quietness / n
		merged.Preferences.ServiceQuality += p.Preferences.ServiceQuality / n
		merged.Preferences.Healthiness += p.Preferences.Healthiness / n
		merged.Preferences.Value += p.Preferences.Value / n
		merged.Preferences.Atmosphere += p.Preferences.Atmosphere / n

		for _, c := range p.CuisineTypes {
			if !seen[c] {
				seen[c] = true
				merged.CuisineTypes = append(merged.CuisineTypes, c)
			}
		}

		if p.PriceRange.Min > merged.PriceRange.Min {
			merged.PriceRange.Min = p.PriceRange.Min
		}
		if p.PriceRange.Max < merged.PriceRange.Max {
			merged.PriceRange.Max = p.PriceRange.Max
		}
	}
	return merged
}

// AggregateGroup scores the catalog for a group of participants. The base
// list comes from the per-user scorer acting as the first participant (its
// favorite/friend signals in opts belong to that user); a group-fit bonus
// is then added where the merged profile agrees with the restaurant, and
// the list is re-sorted and truncated to GroupLimit.
//
// An empty profile slice yields an empty result, not an error.
func (s *Scorer) AggregateGroup(profiles []profile.TasteProfile, restaurants []catalog.Restaurant, opts Options) ([]Recommendation, error) {
	if len(profiles) == 0 {
		return []Recommendation{}, nil
	}

	merged := MergeProfiles(profiles)

	base, err := s.Score(profiles[0], restaurants, opts)
	if err != nil {
		return nil, err
	}

	for i := range base {
		if s.groupFit(merged, base[i].Restaurant) {
			base[i].Score += s.bonuses.GroupFit
			base[i].Reasons = append(base[i].Reasons, ReasonGroupFit)
			if len(base[i].Reasons) > MaxReasons {
				base[i].Reasons = base[i].Reasons[:MaxReasons]
			}
		}
	}

	sort.SliceStable(base, func(i, j int) bool {
		return base[i].Score > base[j].Score
	})
	if len(base) > GroupLimit {
		base = base[:GroupLimit]
	}
	return base, nil
}

// groupFit holds when the restaurant's quietness is close to the merged
// preference and its average price sits inside the merged price range.
func (s *Scorer) groupFit(merged profile.TasteProfile, r catalog.Restaurant) bool {
	if r.Attributes.Quietness == nil {
		return false
	}
	if math.Abs(merged.Preferences.Quietness-*r.Attributes.Quietness) >= groupQuietnessBand {
		return false
	}
	return merged.PriceRange.Contains(r.AvgPrice())
}

package recommend

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

func TestMergeProfilesSingle(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	p.Preferences.Quietness = 70
	p.CuisineTypes = []string{"Thai", "Mexican"}
	p.PriceRange = catalog.PriceRange{Min: 15, Max: 60}

	merged := MergeProfiles([]profile.TasteProfile{p})

	if merged.Preferences != p.Preferences {
		t.Errorf("single-profile merge changed preferences: %+v", merged.Preferences)
	}
	if !reflect.DeepEqual(merged.CuisineTypes, p.CuisineTypes) {
		t.Errorf("single-profile merge changed cuisines: %v", merged.CuisineTypes)
	}
	if merged.PriceRange != p.PriceRange {
		t.Errorf("single-profile merge changed price range: %+v", merged.PriceRange)
	}
}

func TestMergeProfilesMean(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.Preferences.Quietness = 20
	b := profile.DefaultProfile("b")
	b.Preferences.Quietness = 80

	merged := MergeProfiles([]profile.TasteProfile{a, b})
	if merged.Preferences.Quietness != 50 {
		t.Errorf("expected mean quietness 50, got %f", merged.Preferences.Quietness)
	}
}

func TestMergeProfilesCuisineUnion(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.CuisineTypes = []string{"Italian", "Thai"}
	b := profile.DefaultProfile("b")
	b.CuisineTypes = []string{"Thai", "Mexican"}

	merged := MergeProfiles([]profile.TasteProfile{a, b})
	want := []string{"Italian", "Thai", "Mexican"}
	if !reflect.DeepEqual(merged.CuisineTypes, want) {
		t.Errorf("expected union %v, got %v", want, merged.CuisineTypes)
	}
}

func TestMergeProfilesPriceIntersection(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.PriceRange = catalog.PriceRange{Min: 10, Max: 60}
	b := profile.DefaultProfile("b")
	b.PriceRange = catalog.PriceRange{Min: 30, Max: 100}

	merged := MergeProfiles([]profile.TasteProfile{a, b})
	want := catalog.PriceRange{Min: 30, Max: 60}
	if merged.PriceRange != want {
		t.Errorf("expected intersection %+v, got %+v", want, merged.PriceRange)
	}
}

func TestMergeProfilesDisjointPriceRanges(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.PriceRange = catalog.PriceRange{Min: 10, Max: 20}
	b := profile.DefaultProfile("b")
	b.PriceRange = catalog.PriceRange{Min: 80, Max: 100}

	// A degenerate intersection passes through unchanged; price matching
	// downstream simply never fires.
	merged := MergeProfiles([]profile.TasteProfile{a, b})
	want := catalog.PriceRange{Min: 80, Max: 20}
	if merged.PriceRange != want {
		t.Errorf("expected degenerate range %+v, got %+v", want, merged.PriceRange)
	}
	if merged.PriceRange.Contains(50) {
		t.Error("degenerate range should contain nothing")
	}
}

func TestAggregateGroupEmpty(t *testing.T) {
	recs, err := testScorer().AggregateGroup(nil, []catalog.Restaurant{{ID: "r1"}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %d", len(recs))
	}
}

func TestAggregateGroupBonus(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.Preferences.Quietness = 40
	a.PriceRange = catalog.PriceRange{Min: 10, Max: 60}
	b := profile.DefaultProfile("b")
	b.Preferences.Quietness = 60
	b.PriceRange = catalog.PriceRange{Min: 20, Max: 80}

	fits := catalog.Restaurant{
		ID:         "fits",
		PriceRange: catalog.PriceRange{Min: 30, Max: 50}, // avg 40, inside 20-60
		Attributes: catalog.Attributes{Quietness: float64Ptr(55)},
	}
	tooLoud := catalog.Restaurant{
		ID:         "too-loud",
		PriceRange: catalog.PriceRange{Min: 30, Max: 50},
		Attributes: catalog.Attributes{Quietness: float64Ptr(90)},
	}

	recs, err := testScorer().AggregateGroup(
		[]profile.TasteProfile{a, b},
		[]catalog.Restaurant{fits, tooLoud},
		Options{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	if recs[0].Restaurant.ID != "fits" {
		t.Fatalf("expected fitting restaurant first, got %s", recs[0].Restaurant.ID)
	}
	// Merged quietness 50 vs 55 within band, avg price inside merged range.
	if recs[0].Score-recs[1].Score < 30 {
		t.Errorf("expected group-fit bonus gap, got %d vs %d", recs[0].Score, recs[1].Score)
	}
	found := false
	for _, reason := range recs[0].Reasons {
		if reason == ReasonGroupFit {
			found = true
		}
	}
	if !found {
		t.Errorf("expected group-fit reason, got %v", recs[0].Reasons)
	}
}

func TestAggregateGroupUsesFirstProfileSignals(t *testing.T) {
	a := profile.DefaultProfile("a")
	b := profile.DefaultProfile("b")
	r := catalog.Restaurant{ID: "r1", PriceRange: catalog.PriceRange{Min: 500, Max: 600}}

	// FavoriteIDs belong to the first participant; the base score reflects
	// them even though other participants may not share the favorite.
	recs, err := testScorer().AggregateGroup(
		[]profile.TasteProfile{a, b},
		[]catalog.Restaurant{r},
		Options{FavoriteIDs: map[string]bool{"r1": true}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0].MatchType != MatchPersonalFavorite {
		t.Errorf("expected personal-favorite, got %s", recs[0].MatchType)
	}
}

func TestAggregateGroupLimit(t *testing.T) {
	p := profile.DefaultProfile("a")
	restaurants := make([]catalog.Restaurant, 15)
	for i := range restaurants {
		restaurants[i] = catalog.Restaurant{
			ID:         fmt.Sprintf("r%d", i),
			PriceRange: catalog.PriceRange{Min: 20, Max: 40},
		}
	}

	recs, err := testScorer().AggregateGroup([]profile.TasteProfile{p}, restaurants, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != GroupLimit {
		t.Errorf("expected %d recommendations, got %d", GroupLimit, len(recs))
	}
}

func TestAggregateGroupReasonCap(t *testing.T) {
	a := profile.DefaultProfile("a")
	a.CuisineTypes = []string{"Italian"}

	r := catalog.Restaurant{
		ID:           "r1",
		CuisineTypes: []string{"Italian"},
		PriceRange:   catalog.PriceRange{Min: 20, Max: 40},
		Attributes:   catalog.Attributes{Quietness: float64Ptr(50)},
		Rating:       catalog.Rating{Average: 4.8},
	}

	recs, err := testScorer().AggregateGroup([]profile.TasteProfile{a}, []catalog.Restaurant{r}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs[0].Reasons) > MaxReasons {
		t.Errorf("expected at most %d reasons, got %v", MaxReasons, recs[0].Reasons)
	}
}

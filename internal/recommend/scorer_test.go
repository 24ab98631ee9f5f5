package recommend

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/forkcast-app/forkcast/internal/catalog"
	"github.com/forkcast-app/forkcast/internal/profile"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float64Ptr(v float64) *float64 { return &v }

func testScorer() *Scorer {
	return NewScorer(DefaultBonuses(), discardLogger())
}

func italianProfile() profile.TasteProfile {
	p := profile.DefaultProfile("user-1")
	p.CuisineTypes = []string{"Italian"}
	return p
}

func TestDefaultBonusesValid(t *testing.T) {
	if err := DefaultBonuses().Validate(); err != nil {
		t.Errorf("default bonuses invalid: %v", err)
	}
}

func TestBonusSetValidate(t *testing.T) {
	b := DefaultBonuses()
	b.CuisineMatch = -1
	if err := b.Validate(); err == nil {
		t.Error("expected error for negative bonus")
	}

	b = DefaultBonuses()
	b.Fallback = 0
	if err := b.Validate(); err == nil {
		t.Error("expected error for zero fallback")
	}
}

func TestScoreQuietPriceCuisineRating(t *testing.T) {
	p := italianProfile()
	r := catalog.Restaurant{
		ID:           "r1",
		Name:         "Trattoria",
		CuisineTypes: []string{"Italian"},
		PriceRange:   catalog.PriceRange{Min: 20, Max: 40},
		Attributes:   catalog.Attributes{Quietness: float64Ptr(55)},
		Rating:       catalog.Rating{Average: 4.5, Count: 12},
	}

	recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	// quietness 15 + price 10 + cuisine 10 + rating 10
	if rec.Score != 45 {
		t.Errorf("expected score 45, got %d", rec.Score)
	}
	if rec.MatchType != MatchSmartMatch {
		t.Errorf("expected smart-match, got %s", rec.MatchType)
	}
	// Four rules fired; the rating reason is dropped by truncation.
	wantReasons := []string{ReasonQuietness, ReasonPrice, ReasonCuisine}
	if !reflect.DeepEqual(rec.Reasons, wantReasons) {
		t.Errorf("expected reasons %v, got %v", wantReasons, rec.Reasons)
	}
}

func TestScoreFavorite(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	p.PriceRange = catalog.PriceRange{Min: 1, Max: 2}
	r := catalog.Restaurant{ID: "r1", PriceRange: catalog.PriceRange{Min: 500, Max: 600}}

	recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
		FavoriteIDs: map[string]bool{"r1": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := recs[0]
	if rec.Score != 50 {
		t.Errorf("expected score 50, got %d", rec.Score)
	}
	if rec.MatchType != MatchPersonalFavorite {
		t.Errorf("expected personal-favorite, got %s", rec.MatchType)
	}
}

func TestFriendPickWinsOverFavorite(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	p.PriceRange = catalog.PriceRange{Min: 1, Max: 2}
	r := catalog.Restaurant{ID: "r1", PriceRange: catalog.PriceRange{Min: 500, Max: 600}}

	recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
		FavoriteIDs:          map[string]bool{"r1": true},
		FriendRecommendedIDs: map[string]bool{"r1": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := recs[0]
	if rec.MatchType != MatchFriendRecommendation {
		t.Errorf("expected friend-recommendation, got %s", rec.MatchType)
	}
	// Both bonuses still stack.
	if rec.Score != 90 {
		t.Errorf("expected score 90, got %d", rec.Score)
	}
}

func TestFallbackGuarantee(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	p.PriceRange = catalog.PriceRange{Min: 1, Max: 2}
	r := catalog.Restaurant{
		ID:         "nothing-matches",
		PriceRange: catalog.PriceRange{Min: 500, Max: 600},
		Rating:     catalog.Rating{Average: 2.0},
	}

	recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := recs[0]
	if rec.Score < 5 {
		t.Errorf("expected score >= 5, got %d", rec.Score)
	}
	if len(rec.Reasons) != 1 || rec.Reasons[0] != ReasonFallback {
		t.Errorf("expected exactly the fallback reason, got %v", rec.Reasons)
	}
}

func TestMeetingTypeReason(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	p.PriceRange = catalog.PriceRange{Min: 1, Max: 2}
	r := catalog.Restaurant{
		ID:         "r1",
		PriceRange: catalog.PriceRange{Min: 500, Max: 600},
		Attributes: catalog.Attributes{
			IdealMeetingTypes: []catalog.MeetingType{catalog.MeetingInvestorLunch},
		},
	}

	recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
		MeetingType: catalog.MeetingInvestorLunch,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := recs[0]
	if rec.Score != 20 {
		t.Errorf("expected score 20, got %d", rec.Score)
	}
	if len(rec.Reasons) != 1 || rec.Reasons[0] != "Perfect for investor lunch" {
		t.Errorf("unexpected reasons: %v", rec.Reasons)
	}
}

func TestProximityBands(t *testing.T) {
	// Along a meridian, one degree of latitude is 111.195 km with the
	// shared Earth radius, so offsets give exact distances.
	origin := catalog.Coordinates{Lat: 0, Lng: 0}
	kmPerDegree := earthRadiusKm * math.Pi / 180

	tests := []struct {
		name      string
		km        float64
		wantScore int
	}{
		{"very close", 0.5, 15},
		{"nearby", 3, 10},
		{"far", 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.DefaultProfile("user-1")
			p.PriceRange = catalog.PriceRange{Min: 1, Max: 2}
			r := catalog.Restaurant{
				ID:          "r1",
				Coordinates: catalog.Coordinates{Lat: tt.km / kmPerDegree, Lng: 0},
				PriceRange:  catalog.PriceRange{Min: 500, Max: 600},
			}

			recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
				UserLocation: &origin,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := tt.wantScore
			if want == 0 {
				want = 5 // fallback fires when no band does
			}
			if recs[0].Score != want {
				t.Errorf("at %.1f km expected score %d, got %d", tt.km, want, recs[0].Score)
			}
		})
	}
}

func TestSortStableAndLimit(t *testing.T) {
	p := italianProfile()

	restaurants := []catalog.Restaurant{
		{ID: "a", PriceRange: catalog.PriceRange{Min: 500, Max: 600}},
		{ID: "b", CuisineTypes: []string{"Italian"}, PriceRange: catalog.PriceRange{Min: 500, Max: 600}},
		{ID: "c", PriceRange: catalog.PriceRange{Min: 500, Max: 600}},
		{ID: "d", CuisineTypes: []string{"Italian"}, PriceRange: catalog.PriceRange{Min: 500, Max: 600}},
	}

	recs, err := testScorer().Score(p, restaurants, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotOrder := make([]string, len(recs))
	for i, rec := range recs {
		gotOrder[i] = rec.Restaurant.ID
	}
	// b and d score higher; ties keep catalog order.
	wantOrder := []string{"b", "d", "a", "c"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("expected order %v, got %v", wantOrder, gotOrder)
	}

	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %d > %d", i, recs[i].Score, recs[i-1].Score)
		}
	}

	limited, err := testScorer().Score(p, restaurants, Options{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(limited))
	}
}

func TestDefaultLimitApplied(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	restaurants := make([]catalog.Restaurant, 30)
	for i := range restaurants {
		restaurants[i] = catalog.Restaurant{
			ID:         string(rune('a' + i)),
			PriceRange: catalog.PriceRange{Min: 20, Max: 40},
		}
	}

	recs, err := testScorer().Score(p, restaurants, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != DefaultLimit {
		t.Errorf("expected %d recommendations, got %d", DefaultLimit, len(recs))
	}
}

func TestScoreIdempotent(t *testing.T) {
	p := italianProfile()
	restaurants := []catalog.Restaurant{
		{ID: "r1", CuisineTypes: []string{"Italian"}, PriceRange: catalog.PriceRange{Min: 20, Max: 40}, Rating: catalog.Rating{Average: 4.2}},
		{ID: "r2", PriceRange: catalog.PriceRange{Min: 30, Max: 80}},
	}
	opts := Options{FavoriteIDs: map[string]bool{"r2": true}}

	first, err := testScorer().Score(p, restaurants, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := testScorer().Score(p, restaurants, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different output")
	}
}

func TestTrendingMatchType(t *testing.T) {
	p := profile.DefaultProfile("user-1")
	r := catalog.Restaurant{ID: "r1", PriceRange: catalog.PriceRange{Min: 20, Max: 40}}

	t.Run("applies to smart matches", func(t *testing.T) {
		recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
			TrendingIDs: map[string]bool{"r1": true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recs[0].MatchType != MatchTrending {
			t.Errorf("expected trending, got %s", recs[0].MatchType)
		}
	})

	t.Run("does not override favorite", func(t *testing.T) {
		recs, err := testScorer().Score(p, []catalog.Restaurant{r}, Options{
			FavoriteIDs: map[string]bool{"r1": true},
			TrendingIDs: map[string]bool{"r1": true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recs[0].MatchType != MatchPersonalFavorite {
			t.Errorf("expected personal-favorite, got %s", recs[0].MatchType)
		}
	})
}

func TestScoreInputValidation(t *testing.T) {
	valid := profile.DefaultProfile("user-1")

	t.Run("negative limit", func(t *testing.T) {
		_, err := testScorer().Score(valid, nil, Options{Limit: -1})
		if err == nil {
			t.Error("expected error for negative limit")
		}
	})

	t.Run("NaN preference", func(t *testing.T) {
		p := valid
		p.Preferences.Quietness = math.NaN()
		_, err := testScorer().Score(p, nil, Options{})
		if err == nil {
			t.Error("expected error for NaN preference")
		}
	})

	t.Run("infinite location", func(t *testing.T) {
		_, err := testScorer().Score(valid, nil, Options{
			UserLocation: &catalog.Coordinates{Lat: math.Inf(1), Lng: 0},
		})
		if err == nil {
			t.Error("expected error for infinite location")
		}
	})
}

func TestEmptyCatalog(t *testing.T) {
	recs, err := testScorer().Score(profile.DefaultProfile("user-1"), nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %d", len(recs))
	}
}

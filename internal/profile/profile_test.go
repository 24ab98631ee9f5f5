package profile

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/forkcast-app/forkcast/internal/catalog"
)

func TestDefaultProfileConsistent(t *testing.T) {
	a := DefaultProfile("user-1")
	b := DefaultProfile("user-1")
	if !reflect.DeepEqual(a, b) {
		t.Error("two default profiles for the same user differ")
	}

	if a.Preferences.Quietness != DefaultPreference {
		t.Errorf("expected quietness %f, got %f", DefaultPreference, a.Preferences.Quietness)
	}
	if a.PriceRange != (catalog.PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax}) {
		t.Errorf("unexpected default price range: %+v", a.PriceRange)
	}
	if a.CuisineTypes == nil || len(a.CuisineTypes) != 0 {
		t.Errorf("expected empty non-nil cuisine list, got %v", a.CuisineTypes)
	}
}

func TestPreferencesClamped(t *testing.T) {
	p := Preferences{Quietness: -10, ServiceQuality: 150, Healthiness: 50, Value: 0, Atmosphere: 100}
	c := p.Clamped()
	want := Preferences{Quietness: 0, ServiceQuality: 100, Healthiness: 50, Value: 0, Atmosphere: 100}
	if c != want {
		t.Errorf("expected %+v, got %+v", want, c)
	}
}

func TestPreferencesFinite(t *testing.T) {
	if !(Preferences{Quietness: 50}).Finite() {
		t.Error("expected finite preferences")
	}
	if (Preferences{Quietness: math.NaN()}).Finite() {
		t.Error("NaN should not be finite")
	}
	if (Preferences{Value: math.Inf(-1)}).Finite() {
		t.Error("Inf should not be finite")
	}
}

func TestCuisineSet(t *testing.T) {
	p := DefaultProfile("user-1")
	p.CuisineTypes = []string{"Italian", "Thai"}
	set := p.CuisineSet()
	if !set["Italian"] || !set["Thai"] || set["Mexican"] {
		t.Errorf("unexpected cuisine set: %v", set)
	}
}

func TestApplyRating(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := DefaultProfile("user-1")

	p.ApplyRating(4, now)
	if p.Learning.TotalRatings != 1 || p.Learning.AverageRating != 4 {
		t.Errorf("after first rating: %+v", p.Learning)
	}

	p.ApplyRating(2, now.Add(time.Hour))
	if p.Learning.TotalRatings != 2 || p.Learning.AverageRating != 3 {
		t.Errorf("after second rating: %+v", p.Learning)
	}
	if !p.Learning.LastUpdated.Equal(now.Add(time.Hour)) {
		t.Errorf("last updated not advanced: %v", p.Learning.LastUpdated)
	}
}

func TestApplyRatingClampsValue(t *testing.T) {
	p := DefaultProfile("user-1")
	p.ApplyRating(99, time.Now())
	if p.Learning.AverageRating != 5 {
		t.Errorf("expected clamped average 5, got %f", p.Learning.AverageRating)
	}
}

func TestValidate(t *testing.T) {
	p := DefaultProfile("user-1")
	if err := p.Validate(); err != nil {
		t.Errorf("default profile invalid: %v", err)
	}

	p.Preferences.Atmosphere = math.NaN()
	if err := p.Validate(); err == nil {
		t.Error("expected error for NaN preference")
	}

	p = DefaultProfile("user-1")
	p.PriceRange = catalog.PriceRange{Min: 50, Max: 50}
	if err := p.Validate(); err == nil {
		t.Error("expected error for degenerate price range")
	}
}

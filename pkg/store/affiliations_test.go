package store

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/observability"
)

func newAffiliations(t *testing.T) *Store {
	t.Helper()
	s := New()
	for _, a := range []struct {
		id   AffiliationID
		name Name
		xy   geo.Coord
	}{
		{"A1", "Org", geo.Coord{X: 0, Y: 0}},
		{"B2", "Beta", geo.Coord{X: 10, Y: 0}},
		{"C3", "Alpha", geo.Coord{X: 3, Y: 4}},
		{"D4", "Alpha", geo.Coord{X: -2, Y: -2}},
	} {
		if !s.AddAffiliation(a.id, a.name, a.xy) {
			t.Fatalf("AddAffiliation(%s) failed", a.id)
		}
	}
	return s
}

func TestAddAffiliation(t *testing.T) {
	s := New()
	if !s.AddAffiliation("A1", "Org", geo.Coord{X: 0, Y: 0}) {
		t.Fatal("AddAffiliation should succeed")
	}
	if got := s.AffiliationName("A1"); got != "Org" {
		t.Errorf("AffiliationName = %q, want Org", got)
	}
	if got := s.AffiliationCoord("A1"); got != (geo.Coord{X: 0, Y: 0}) {
		t.Errorf("AffiliationCoord = %v, want (0,0)", got)
	}

	if s.AddAffiliation("A1", "Other", geo.Coord{X: 5, Y: 5}) {
		t.Error("duplicate AddAffiliation should fail")
	}
	if got := s.AffiliationName("A1"); got != "Org" {
		t.Errorf("duplicate insert changed name to %q", got)
	}
	if got := s.AffiliationCount(); got != 1 {
		t.Errorf("AffiliationCount = %d, want 1", got)
	}
	if got := len(s.AffiliationsDistanceIncreasing()); got != 1 {
		t.Errorf("distance ordering has %d entries, want 1", got)
	}
}

func TestAffiliationNotFound(t *testing.T) {
	s := New()
	if got := s.AffiliationName("nope"); got != NoName {
		t.Errorf("AffiliationName = %q, want NoName", got)
	}
	if got := s.AffiliationCoord("nope"); got != geo.NoCoord {
		t.Errorf("AffiliationCoord = %v, want NoCoord", got)
	}
	if got := s.FindAffiliationWithCoord(geo.Coord{X: 1, Y: 1}); got != NoAffiliation {
		t.Errorf("FindAffiliationWithCoord = %q, want NoAffiliation", got)
	}
	if s.ChangeAffiliationCoord("nope", geo.Coord{}) {
		t.Error("ChangeAffiliationCoord should fail for unknown id")
	}
	if s.RemoveAffiliation("nope") {
		t.Error("RemoveAffiliation should fail for unknown id")
	}
}

func TestAllAffiliationsMatchesCount(t *testing.T) {
	s := newAffiliations(t)
	all := s.AllAffiliations()
	if len(all) != s.AffiliationCount() {
		t.Errorf("len(AllAffiliations) = %d, AffiliationCount = %d", len(all), s.AffiliationCount())
	}
	want := []AffiliationID{"A1", "B2", "C3", "D4"}
	if !slices.Equal(all, want) {
		t.Errorf("AllAffiliations = %v, want %v", all, want)
	}

	// Mutating the returned slice must not affect the store.
	all[0] = "X"
	if s.AllAffiliations()[0] != "A1" {
		t.Error("AllAffiliations should return a copy")
	}
}

func TestAffiliationsAlphabetically(t *testing.T) {
	s := newAffiliations(t)

	got := s.AffiliationsAlphabetically()
	want := []AffiliationID{"C3", "D4", "B2", "A1"}
	if !slices.Equal(got, want) {
		t.Fatalf("AffiliationsAlphabetically = %v, want %v", got, want)
	}
	if again := s.AffiliationsAlphabetically(); !slices.Equal(again, got) {
		t.Errorf("second call = %v, want %v", again, got)
	}

	s.AddAffiliation("E5", "Aardvark", geo.Coord{X: 1, Y: 1})
	got = s.AffiliationsAlphabetically()
	if got[0] != "E5" || len(got) != 5 {
		t.Errorf("after insert = %v, want E5 first of 5", got)
	}
}

func TestAffiliationsDistanceIncreasing(t *testing.T) {
	s := newAffiliations(t)
	got := s.AffiliationsDistanceIncreasing()
	want := []AffiliationID{"A1", "D4", "C3", "B2"}
	if !slices.Equal(got, want) {
		t.Errorf("AffiliationsDistanceIncreasing = %v, want %v", got, want)
	}
}

func TestAffiliationsDistanceIncreasingExtremes(t *testing.T) {
	s := New()
	s.AddAffiliation("origin", "Origin", geo.Coord{})
	s.AddAffiliation("far", "Far", geo.Coord{X: math.MaxInt})
	s.AddAffiliation("neg", "Negative", geo.Coord{X: math.MinInt + 1, Y: math.MinInt + 1})
	s.AddAffiliation("near", "Near", geo.Coord{X: 1, Y: 1})

	got := s.AffiliationsDistanceIncreasing()
	want := []AffiliationID{"origin", "near", "far", "neg"}
	if !slices.Equal(got, want) {
		t.Errorf("AffiliationsDistanceIncreasing = %v, want %v", got, want)
	}
	if got := s.FindAffiliationWithCoord(geo.Coord{X: math.MaxInt}); got != "far" {
		t.Errorf("FindAffiliationWithCoord = %q, want far", got)
	}
}

func TestChangeAffiliationCoord(t *testing.T) {
	s := newAffiliations(t)
	alpha := s.AffiliationsAlphabetically()

	if !s.ChangeAffiliationCoord("B2", geo.Coord{X: 1, Y: 0}) {
		t.Fatal("ChangeAffiliationCoord should succeed")
	}
	if got := s.FindAffiliationWithCoord(geo.Coord{X: 10, Y: 0}); got != NoAffiliation {
		t.Errorf("old coordinate still maps to %q", got)
	}
	if got := s.FindAffiliationWithCoord(geo.Coord{X: 1, Y: 0}); got != "B2" {
		t.Errorf("new coordinate maps to %q, want B2", got)
	}
	if got := s.AffiliationCoord("B2"); got != (geo.Coord{X: 1, Y: 0}) {
		t.Errorf("AffiliationCoord = %v", got)
	}

	got := s.AffiliationsDistanceIncreasing()
	want := []AffiliationID{"A1", "B2", "D4", "C3"}
	if !slices.Equal(got, want) {
		t.Errorf("AffiliationsDistanceIncreasing = %v, want %v", got, want)
	}
	if got := s.AffiliationsAlphabetically(); !slices.Equal(got, alpha) {
		t.Errorf("alphabetical ordering changed to %v", got)
	}
}

func TestFindAffiliationWithCoordSharedPoint(t *testing.T) {
	s := New()
	s.AddAffiliation("Z", "Zed", geo.Coord{X: 2, Y: 2})
	s.AddAffiliation("M", "Em", geo.Coord{X: 2, Y: 2})

	if got := s.FindAffiliationWithCoord(geo.Coord{X: 2, Y: 2}); got != "M" {
		t.Errorf("FindAffiliationWithCoord = %q, want M", got)
	}
	if got := len(s.AffiliationsDistanceIncreasing()); got != 2 {
		t.Errorf("distance ordering has %d entries, want 2", got)
	}

	s.RemoveAffiliation("M")
	if got := s.FindAffiliationWithCoord(geo.Coord{X: 2, Y: 2}); got != "Z" {
		t.Errorf("after removal FindAffiliationWithCoord = %q, want Z", got)
	}
}

func TestRemoveAffiliation(t *testing.T) {
	s := newAffiliations(t)
	s.AddPublication(1, "P1", 2000, []AffiliationID{"A1", "C3"})
	s.AddPublication(2, "P2", 2001, nil)
	s.AddAffiliationToPublication("C3", 2)
	s.AddAffiliationToPublication("C3", 2)

	// Prime both caches so removal has something to invalidate.
	s.AffiliationsAlphabetically()
	s.AffiliationsDistanceIncreasing()

	if !s.RemoveAffiliation("C3") {
		t.Fatal("RemoveAffiliation should succeed")
	}
	if s.RemoveAffiliation("C3") {
		t.Error("second RemoveAffiliation should fail")
	}

	if got := s.PublicationAffiliations(1); !slices.Equal(got, []AffiliationID{"A1"}) {
		t.Errorf("PublicationAffiliations(1) = %v, want [A1]", got)
	}
	if got := s.PublicationAffiliations(2); len(got) != 0 {
		t.Errorf("PublicationAffiliations(2) = %v, want empty", got)
	}
	if slices.Contains(s.AffiliationsAlphabetically(), "C3") {
		t.Error("alphabetical ordering still contains C3")
	}
	if slices.Contains(s.AffiliationsDistanceIncreasing(), "C3") {
		t.Error("distance ordering still contains C3")
	}
	if slices.Contains(s.AllAffiliations(), "C3") {
		t.Error("AllAffiliations still contains C3")
	}
	if got := s.FindAffiliationWithCoord(geo.Coord{X: 3, Y: 4}); got != NoAffiliation {
		t.Errorf("FindAffiliationWithCoord = %q after removal", got)
	}
	if got := s.AffiliationCount(); got != 3 {
		t.Errorf("AffiliationCount = %d, want 3", got)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, rebuilds, invalidations int
}

func (h *countingCacheHooks) OnCacheHit(string)          { h.hits++ }
func (h *countingCacheHooks) OnCacheRebuild(string, int) { h.rebuilds++ }
func (h *countingCacheHooks) OnCacheInvalidate(string)   { h.invalidations++ }

func TestOrderingCacheLifecycle(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	s := New()
	s.AffiliationsAlphabetically()
	if hooks.hits != 1 || hooks.rebuilds != 0 {
		t.Fatalf("fresh store: hits=%d rebuilds=%d, want 1/0", hooks.hits, hooks.rebuilds)
	}

	s.AddAffiliation("A", "a", geo.Coord{X: 1, Y: 1})
	if hooks.invalidations != 2 {
		t.Errorf("invalidations = %d, want 2", hooks.invalidations)
	}
	s.AffiliationsAlphabetically()
	s.AffiliationsAlphabetically()
	if hooks.rebuilds != 1 || hooks.hits != 2 {
		t.Errorf("hits=%d rebuilds=%d, want 2/1", hooks.hits, hooks.rebuilds)
	}

	// A coordinate change only touches the distance cache.
	s.AffiliationsDistanceIncreasing()
	before := hooks.invalidations
	s.ChangeAffiliationCoord("A", geo.Coord{X: 2, Y: 2})
	if hooks.invalidations != before+1 {
		t.Errorf("ChangeAffiliationCoord invalidated %d caches, want 1", hooks.invalidations-before)
	}
	if s.affs.alphabetical.state != cacheValid {
		t.Error("alphabetical cache should stay valid after a coordinate change")
	}
	if s.affs.distance.state != cacheStale {
		t.Error("distance cache should be stale after a coordinate change")
	}
}

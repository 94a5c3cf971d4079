package idgen

import (
	"slices"
	"testing"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/store"
)

func TestIntInBounds(t *testing.T) {
	g := New(1)
	for range 1000 {
		if v := g.IntIn(-3, 5); v < -3 || v > 5 {
			t.Fatalf("IntIn(-3, 5) = %d", v)
		}
		if v := g.IntIn(5, -3); v < -3 || v > 5 {
			t.Fatalf("IntIn(5, -3) = %d", v)
		}
		if v := g.IntIn(7, 7); v != 7 {
			t.Fatalf("IntIn(7, 7) = %d", v)
		}
		if y := g.Year(2000, 2002); y < 2000 || y > 2002 {
			t.Fatalf("Year = %d", y)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 10 {
		if a.AffiliationID() != b.AffiliationID() {
			t.Fatal("same seed produced different ids")
		}
	}
	if New(1).AffiliationID() == New(2).AffiliationID() {
		t.Error("different seeds produced the same id")
	}
}

func TestUUIDVersion(t *testing.T) {
	u := New(7).UUID()
	if u.Version() != 4 {
		t.Errorf("Version = %d, want 4", u.Version())
	}
}

func TestSynthetic(t *testing.T) {
	opts := DefaultOptions()
	opts.Affiliations = 20
	ds := New(3).Synthetic(100, opts)

	if len(ds.Affiliations) != 20 || len(ds.Publications) != 100 {
		t.Fatalf("got %d affiliations, %d publications", len(ds.Affiliations), len(ds.Publications))
	}
	for _, p := range ds.Publications {
		if p.Parent != nil && *p.Parent >= p.ID {
			t.Fatalf("publication %d cites later publication %d", p.ID, *p.Parent)
		}
		if p.Year < opts.YearLo || p.Year > opts.YearHi {
			t.Fatalf("publication %d year %d out of range", p.ID, p.Year)
		}
		if n := len(p.Affiliations); n < 1 || n > opts.MaxAuthors {
			t.Fatalf("publication %d has %d affiliations", p.ID, n)
		}
	}

	s := store.New()
	st, err := dataset.Apply(s, ds)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Publications != 100 || st.Affiliations != 20 {
		t.Errorf("Stats = %+v", st)
	}
	// Every chain ends at a root.
	for _, id := range s.AllPublications() {
		chain := s.ReferencedByChain(id)
		if len(chain) > 0 && s.Parent(chain[len(chain)-1]) != store.NoPublication {
			t.Fatalf("chain of %d does not end at a root", id)
		}
	}
}

func TestSyntheticReproducible(t *testing.T) {
	a := New(9).Synthetic(30, DefaultOptions())
	b := New(9).Synthetic(30, DefaultOptions())
	if !slices.EqualFunc(a.Affiliations, b.Affiliations, func(x, y dataset.Affiliation) bool { return x == y }) {
		t.Error("affiliations differ for the same seed")
	}
	for i := range a.Publications {
		pa, pb := a.Publications[i], b.Publications[i]
		if pa.Year != pb.Year || !slices.Equal(pa.Affiliations, pb.Affiliations) || (pa.Parent == nil) != (pb.Parent == nil) {
			t.Fatalf("publication %d differs for the same seed", i)
		}
	}
}

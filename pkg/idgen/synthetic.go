package idgen

import (
	"fmt"

	"github.com/matzehuels/citeforest/pkg/dataset"
)

// Options shapes a synthetic dataset.
type Options struct {
	Affiliations int     // number of affiliations, defaults to the publication count
	CoordRange   int     // coordinates fall in [-CoordRange, CoordRange]
	YearLo       uint16  // earliest publication year
	YearHi       uint16  // latest publication year
	MaxAuthors   int     // affiliations linked to each publication, at most
	CiteRatio    float64 // probability that a publication cites an earlier one
}

// DefaultOptions returns the options used by the perftest command.
func DefaultOptions() Options {
	return Options{
		CoordRange: 1000,
		YearLo:     1950,
		YearHi:     2025,
		MaxAuthors: 3,
		CiteRatio:  0.8,
	}
}

// Synthetic builds a dataset with n publications. References only point
// from a publication to one generated before it, so the result is always a
// forest.
func (g *Generator) Synthetic(n int, opts Options) *dataset.Dataset {
	nAff := opts.Affiliations
	if nAff <= 0 {
		nAff = n
	}
	ds := &dataset.Dataset{
		Affiliations: make([]dataset.Affiliation, 0, nAff),
		Publications: make([]dataset.Publication, 0, n),
	}

	seen := make(map[string]bool, nAff)
	for len(ds.Affiliations) < nAff {
		id := g.AffiliationID()
		if seen[id] {
			continue
		}
		seen[id] = true
		x, y := g.Coord(opts.CoordRange)
		ds.Affiliations = append(ds.Affiliations, dataset.Affiliation{
			ID:   id,
			Name: fmt.Sprintf("Affiliation %d", len(ds.Affiliations)),
			X:    x,
			Y:    y,
		})
	}

	for i := range n {
		p := dataset.Publication{
			ID:    uint64(i),
			Title: fmt.Sprintf("Publication %d", i),
			Year:  g.Year(opts.YearLo, opts.YearHi),
		}
		if nAff > 0 && opts.MaxAuthors > 0 {
			for range g.IntIn(1, opts.MaxAuthors) {
				p.Affiliations = append(p.Affiliations, ds.Affiliations[g.IntIn(0, nAff-1)].ID)
			}
		}
		if i > 0 && g.Float() < opts.CiteRatio {
			parent := uint64(g.IntIn(0, i-1))
			p.Parent = &parent
		}
		ds.Publications = append(ds.Publications, p)
	}
	return ds
}

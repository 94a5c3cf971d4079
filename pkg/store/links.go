package store

import (
	"cmp"
	"slices"

	"github.com/matzehuels/citeforest/pkg/observability"
)

// AddAffiliationToPublication links an affiliation to a publication. The
// publication and its year are appended to the affiliation's contributions
// and the affiliation to the publication's contributors. Linking twice
// records two entries on each side.
//
// It returns false, changing nothing, if either side is absent.
func (s *Store) AddAffiliationToPublication(affID AffiliationID, pubID PublicationID) bool {
	a, ok1 := s.affs.records[affID]
	p, ok2 := s.pubs.records[pubID]
	if !ok1 || !ok2 {
		observability.Store().OnMutation("link", string(affID)+"->"+pubKey(pubID), false)
		return false
	}
	p.affiliations = append(p.affiliations, affID)
	a.contributions = append(a.contributions, Contribution{Publication: pubID, Year: p.year})
	observability.Store().OnMutation("link", string(affID)+"->"+pubKey(pubID), true)
	return true
}

// Publications returns the publications the affiliation contributed to, in
// link order, or [NoPublication] if id is absent.
func (s *Store) Publications(id AffiliationID) []PublicationID {
	a, ok := s.affs.records[id]
	if !ok {
		return []PublicationID{NoPublication}
	}
	pubs := make([]PublicationID, len(a.contributions))
	for i, c := range a.contributions {
		pubs[i] = c.Publication
	}
	return pubs
}

// Contributions returns the affiliation's links with their years, in link
// order, or nil if id is absent.
func (s *Store) Contributions(id AffiliationID) []Contribution {
	if a, ok := s.affs.records[id]; ok {
		return slices.Clone(a.contributions)
	}
	return nil
}

// PublicationsAfter returns the affiliation's publications from year on,
// sorted by year and then by id. It returns [{NoYear, NoPublication}] if
// the affiliation is absent.
func (s *Store) PublicationsAfter(id AffiliationID, year Year) []YearPublication {
	a, ok := s.affs.records[id]
	if !ok {
		return []YearPublication{{Year: NoYear, Publication: NoPublication}}
	}
	out := []YearPublication{}
	for _, c := range a.contributions {
		if c.Year >= year {
			out = append(out, YearPublication{Year: c.Year, Publication: c.Publication})
		}
	}
	slices.SortFunc(out, func(x, y YearPublication) int {
		if c := cmp.Compare(x.Year, y.Year); c != 0 {
			return c
		}
		return cmp.Compare(x.Publication, y.Publication)
	})
	return out
}

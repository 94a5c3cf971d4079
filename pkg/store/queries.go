package store

import (
	"cmp"
	"slices"

	"github.com/matzehuels/citeforest/pkg/geo"
)

// DefaultClosest is the number of affiliations AffiliationsClosestTo returns.
const DefaultClosest = 3

// AffiliationsClosestTo returns the three affiliations nearest to xy.
// See [Store.ClosestTo].
func (s *Store) AffiliationsClosestTo(xy geo.Coord) []AffiliationID {
	return s.ClosestTo(xy, DefaultClosest)
}

// ClosestTo returns up to k affiliations nearest to xy by Euclidean
// distance, nearest first:
//
//   - fewer than 2 affiliations: all of them
//   - at most k affiliations: all of them, sorted
//   - otherwise: exactly the k nearest
//
// Equal distances keep insertion order. The insertion order reported by
// [Store.AllAffiliations] is not changed.
func (s *Store) ClosestTo(xy geo.Coord, k int) []AffiliationID {
	ids := slices.Clone(s.affs.order)
	if len(ids) < 2 {
		return ids
	}
	dist := make(map[AffiliationID]float64, len(ids))
	for _, id := range ids {
		dist[id] = geo.Dist(s.affs.records[id].coord, xy)
	}
	slices.SortStableFunc(ids, func(a, b AffiliationID) int {
		return cmp.Compare(dist[a], dist[b])
	})
	if k < 0 || len(ids) <= k {
		return ids
	}
	return ids[:k:k]
}

// ReferencedByChain returns the ancestors of id, nearest first and the root
// last. It returns an empty list for a root and [NoPublication] if id is
// absent.
func (s *Store) ReferencedByChain(id PublicationID) []PublicationID {
	p, ok := s.pubs.records[id]
	if !ok {
		return []PublicationID{NoPublication}
	}
	return s.ancestors(p)
}

// ancestors walks parent pointers from p. The walk stops after as many steps
// as there are publications, so an accidental cycle cannot hang it.
func (s *Store) ancestors(p *publication) []PublicationID {
	chain := []PublicationID{}
	limit := len(s.pubs.records)
	for cur := p.parent; cur != nil && len(chain) < limit; cur = cur.parent {
		chain = append(chain, cur.id)
	}
	return chain
}

// AllReferences returns every publication that transitively cites id, in
// pre-order. It returns an empty list if nothing cites id and
// [NoPublication] if id is absent.
func (s *Store) AllReferences(id PublicationID) []PublicationID {
	p, ok := s.pubs.records[id]
	if !ok {
		return []PublicationID{NoPublication}
	}
	out := []PublicationID{}
	seen := map[PublicationID]bool{id: true}
	var walk func(*publication)
	walk = func(n *publication) {
		for _, c := range n.children {
			if seen[c.id] {
				continue
			}
			seen[c.id] = true
			out = append(out, c.id)
			walk(c)
		}
	}
	walk(p)
	return out
}

// ClosestCommonParent returns the nearest publication that both id1 and id2
// transitively cite. It returns NoPublication if either is absent or their
// chains share no publication.
//
// A publication is not its own ancestor: if id2 cites id1, the result is
// id1's parent rather than id1.
func (s *Store) ClosestCommonParent(id1, id2 PublicationID) PublicationID {
	p1, ok1 := s.pubs.records[id1]
	p2, ok2 := s.pubs.records[id2]
	if !ok1 || !ok2 {
		return NoPublication
	}
	chain2 := s.ancestors(p2)
	inChain2 := make(map[PublicationID]bool, len(chain2))
	for _, a := range chain2 {
		inChain2[a] = true
	}
	for _, a := range s.ancestors(p1) {
		if inChain2[a] {
			return a
		}
	}
	return NoPublication
}

package store

import (
	"slices"

	"github.com/google/btree"

	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/observability"
)

const (
	cacheAlphabetical = "alphabetical"
	cacheDistance     = "distance"
)

type affiliation struct {
	id            AffiliationID
	name          Name
	coord         geo.Coord
	contributions []Contribution
}

// affiliationTable is the primary affiliation table plus its two ordered
// indices and their cached linearizations. Every live affiliation has
// exactly one key in byName and one in byCoord.
type affiliationTable struct {
	records      map[AffiliationID]*affiliation
	order        []AffiliationID
	byName       *btree.BTreeG[nameKey]
	byCoord      *btree.BTreeG[coordKey]
	alphabetical orderingCache
	distance     orderingCache
}

func newAffiliationTable() *affiliationTable {
	return &affiliationTable{
		records:      make(map[AffiliationID]*affiliation),
		order:        []AffiliationID{},
		byName:       newNameIndex(),
		byCoord:      newCoordIndex(),
		alphabetical: newOrderingCache(cacheAlphabetical),
		distance:     newOrderingCache(cacheDistance),
	}
}

// AffiliationCount returns the number of live affiliations.
func (s *Store) AffiliationCount() int { return len(s.affs.order) }

// AllAffiliations returns every affiliation id in insertion order.
// The returned slice is a copy.
func (s *Store) AllAffiliations() []AffiliationID { return slices.Clone(s.affs.order) }

// AddAffiliation inserts an affiliation. It returns false, leaving the
// existing record untouched, if id is already present.
func (s *Store) AddAffiliation(id AffiliationID, name Name, xy geo.Coord) bool {
	t := s.affs
	if _, exists := t.records[id]; exists {
		observability.Store().OnMutation("add_affiliation", string(id), false)
		return false
	}
	t.records[id] = &affiliation{id: id, name: name, coord: xy}
	t.order = append(t.order, id)
	t.byName.ReplaceOrInsert(nameKey{name: name, id: id})
	t.byCoord.ReplaceOrInsert(coordKey{coord: xy, id: id})
	t.alphabetical.invalidate()
	t.distance.invalidate()
	observability.Store().OnMutation("add_affiliation", string(id), true)
	return true
}

// AffiliationName returns the name of the affiliation, or NoName.
func (s *Store) AffiliationName(id AffiliationID) Name {
	if a, ok := s.affs.records[id]; ok {
		return a.name
	}
	return NoName
}

// AffiliationCoord returns the location of the affiliation, or geo.NoCoord.
func (s *Store) AffiliationCoord(id AffiliationID) geo.Coord {
	if a, ok := s.affs.records[id]; ok {
		return a.coord
	}
	return geo.NoCoord
}

// AffiliationsAlphabetically returns every affiliation id ordered by name,
// ties broken by id.
func (s *Store) AffiliationsAlphabetically() []AffiliationID {
	t := s.affs
	return t.alphabetical.get(len(t.records), func(ids []AffiliationID) []AffiliationID {
		t.byName.Ascend(func(k nameKey) bool {
			ids = append(ids, k.id)
			return true
		})
		return ids
	})
}

// AffiliationsDistanceIncreasing returns every affiliation id ordered by
// [geo.Compare] on its coordinate, ties broken by id.
func (s *Store) AffiliationsDistanceIncreasing() []AffiliationID {
	t := s.affs
	return t.distance.get(len(t.records), func(ids []AffiliationID) []AffiliationID {
		t.byCoord.Ascend(func(k coordKey) bool {
			ids = append(ids, k.id)
			return true
		})
		return ids
	})
}

// FindAffiliationWithCoord returns the affiliation located exactly at xy,
// or NoAffiliation. When several share the point, the smallest id wins.
func (s *Store) FindAffiliationWithCoord(xy geo.Coord) AffiliationID {
	found := NoAffiliation
	// The empty id sorts before every other id at the same point.
	s.affs.byCoord.AscendGreaterOrEqual(coordKey{coord: xy}, func(k coordKey) bool {
		if k.coord == xy {
			found = k.id
		}
		return false
	})
	return found
}

// ChangeAffiliationCoord moves the affiliation to xy. It returns false if
// id is absent. Only the distance ordering is invalidated.
func (s *Store) ChangeAffiliationCoord(id AffiliationID, xy geo.Coord) bool {
	t := s.affs
	a, ok := t.records[id]
	if !ok {
		observability.Store().OnMutation("change_affiliation_coord", string(id), false)
		return false
	}
	t.byCoord.Delete(coordKey{coord: a.coord, id: id})
	t.byCoord.ReplaceOrInsert(coordKey{coord: xy, id: id})
	a.coord = xy
	t.distance.invalidate()
	observability.Store().OnMutation("change_affiliation_coord", string(id), true)
	return true
}

// RemoveAffiliation removes the affiliation and every link to it. It
// returns false if id is absent.
func (s *Store) RemoveAffiliation(id AffiliationID) bool {
	t := s.affs
	a, ok := t.records[id]
	if !ok {
		observability.Store().OnMutation("remove_affiliation", string(id), false)
		return false
	}

	dropped := 0
	for _, c := range a.contributions {
		if p, ok := s.pubs.records[c.Publication]; ok {
			before := len(p.affiliations)
			p.affiliations = slices.DeleteFunc(p.affiliations, func(x AffiliationID) bool { return x == id })
			dropped += before - len(p.affiliations)
		}
	}
	if dropped > 0 {
		observability.Store().OnCascade("remove_affiliation", string(id), dropped)
	}

	t.byName.Delete(nameKey{name: a.name, id: id})
	t.byCoord.Delete(coordKey{coord: a.coord, id: id})
	t.order = slices.DeleteFunc(t.order, func(x AffiliationID) bool { return x == id })
	delete(t.records, id)
	t.alphabetical.invalidate()
	t.distance.invalidate()
	observability.Store().OnMutation("remove_affiliation", string(id), true)
	return true
}

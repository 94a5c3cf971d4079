package store

import (
	"slices"
	"strconv"

	"github.com/matzehuels/citeforest/pkg/observability"
)

// publication is one node of the citation forest. parent and children are
// pointers between live records only: removal clears them on both sides
// before a record leaves the table.
type publication struct {
	id           PublicationID
	heading      Name
	year         Year
	affiliations []AffiliationID
	parent       *publication
	children     []*publication
}

// forest is the primary publication table plus insertion order.
type forest struct {
	records map[PublicationID]*publication
	order   []PublicationID
}

func newForest() *forest {
	return &forest{
		records: make(map[PublicationID]*publication),
		order:   []PublicationID{},
	}
}

func pubKey(id PublicationID) string { return strconv.FormatUint(uint64(id), 10) }

// detachChild removes child from p's child list.
func (p *publication) detachChild(child *publication) {
	p.children = slices.DeleteFunc(p.children, func(c *publication) bool { return c == child })
}

// PublicationCount returns the number of live publications.
func (s *Store) PublicationCount() int { return len(s.pubs.order) }

// AddPublication inserts a publication. It returns false, leaving the
// existing record untouched, if id is already present.
//
// affiliations is applied as a batch of [Store.AddAffiliationToPublication]
// calls, so both sides of each link are recorded. Ids of affiliations that
// do not exist are skipped.
func (s *Store) AddPublication(id PublicationID, heading Name, year Year, affiliations []AffiliationID) bool {
	f := s.pubs
	if _, exists := f.records[id]; exists {
		observability.Store().OnMutation("add_publication", pubKey(id), false)
		return false
	}
	f.records[id] = &publication{id: id, heading: heading, year: year, affiliations: []AffiliationID{}}
	f.order = append(f.order, id)
	observability.Store().OnMutation("add_publication", pubKey(id), true)

	for _, aff := range affiliations {
		s.AddAffiliationToPublication(aff, id)
	}
	return true
}

// AllPublications returns every publication id in insertion order.
// The returned slice is a copy.
func (s *Store) AllPublications() []PublicationID { return slices.Clone(s.pubs.order) }

// PublicationName returns the heading of the publication, or NoName.
func (s *Store) PublicationName(id PublicationID) Name {
	if p, ok := s.pubs.records[id]; ok {
		return p.heading
	}
	return NoName
}

// PublicationYear returns the year of the publication, or NoYear.
func (s *Store) PublicationYear(id PublicationID) Year {
	if p, ok := s.pubs.records[id]; ok {
		return p.year
	}
	return NoYear
}

// PublicationAffiliations returns the contributing affiliations in link
// order, or [NoAffiliation] if id is absent.
func (s *Store) PublicationAffiliations(id PublicationID) []AffiliationID {
	if p, ok := s.pubs.records[id]; ok {
		return slices.Clone(p.affiliations)
	}
	return []AffiliationID{NoAffiliation}
}

// AddReference records that publication id cites parentID. It returns false
// if either publication is absent.
//
// A publication has at most one parent: if id already cites another
// publication it is moved. Cycles are not detected; queries that walk the
// parent chain are bounded instead.
func (s *Store) AddReference(id, parentID PublicationID) bool {
	f := s.pubs
	child, ok1 := f.records[id]
	parent, ok2 := f.records[parentID]
	if !ok1 || !ok2 {
		observability.Store().OnMutation("add_reference", pubKey(id), false)
		return false
	}
	if child.parent != nil {
		child.parent.detachChild(child)
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	observability.Store().OnMutation("add_reference", pubKey(id), true)
	return true
}

// DirectReferences returns the ids of the publications that cite id, in the
// order the references were added, or [NoPublication] if id is absent.
func (s *Store) DirectReferences(id PublicationID) []PublicationID {
	p, ok := s.pubs.records[id]
	if !ok {
		return []PublicationID{NoPublication}
	}
	refs := make([]PublicationID, len(p.children))
	for i, c := range p.children {
		refs[i] = c.id
	}
	return refs
}

// Parent returns the id of the publication that id cites, or NoPublication
// if id is absent or is a root.
func (s *Store) Parent(id PublicationID) PublicationID {
	if p, ok := s.pubs.records[id]; ok && p.parent != nil {
		return p.parent.id
	}
	return NoPublication
}

// RemovePublication removes the publication and every link to it. Its
// children become roots; they are neither removed nor re-attached to its
// parent. It returns false if id is absent.
func (s *Store) RemovePublication(id PublicationID) bool {
	f := s.pubs
	p, ok := f.records[id]
	if !ok {
		observability.Store().OnMutation("remove_publication", pubKey(id), false)
		return false
	}

	dropped := 0
	for _, aff := range p.affiliations {
		if a, ok := s.affs.records[aff]; ok {
			before := len(a.contributions)
			a.contributions = slices.DeleteFunc(a.contributions, func(c Contribution) bool { return c.Publication == id })
			dropped += before - len(a.contributions)
		}
	}

	for _, c := range p.children {
		c.parent = nil
	}
	dropped += len(p.children)
	if p.parent != nil {
		p.parent.detachChild(p)
		dropped++
	}
	if dropped > 0 {
		observability.Store().OnCascade("remove_publication", pubKey(id), dropped)
	}

	p.parent = nil
	p.children = nil
	f.order = slices.DeleteFunc(f.order, func(x PublicationID) bool { return x == id })
	delete(f.records, id)
	observability.Store().OnMutation("remove_publication", pubKey(id), true)
	return true
}

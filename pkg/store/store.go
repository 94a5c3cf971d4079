package store

import (
	"math"

	"github.com/matzehuels/citeforest/pkg/observability"
)

// AffiliationID identifies an affiliation. Ids are assigned by the caller.
type AffiliationID string

// PublicationID identifies a publication. Ids are assigned by the caller.
type PublicationID uint64

// Name is an affiliation name or a publication heading.
type Name string

// Year is a publication year.
type Year uint16

// Sentinel values returned by lookups that find nothing.
const (
	NoAffiliation AffiliationID = "---"
	NoPublication PublicationID = math.MaxUint64
	NoName        Name          = "!NO_NAME!"
	NoYear        Year          = math.MaxUint16
)

// Contribution is one link from an affiliation to a publication, stamped
// with the publication's year at link time.
type Contribution struct {
	Publication PublicationID `json:"publication"`
	Year        Year          `json:"year"`
}

// YearPublication pairs a year with a publication id, as returned by
// [Store.PublicationsAfter].
type YearPublication struct {
	Year        Year          `json:"year"`
	Publication PublicationID `json:"publication"`
}

// Store holds affiliations, publications and the links between them.
//
// The zero value is not usable - use New to create a Store.
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	affs *affiliationTable
	pubs *forest
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		affs: newAffiliationTable(),
		pubs: newForest(),
	}
}

// ClearAll drops every affiliation, publication and link, returning the
// Store to the state New produces.
func (s *Store) ClearAll() {
	s.affs = newAffiliationTable()
	s.pubs = newForest()
	observability.Store().OnMutation("clear_all", "", true)
}

// HasAffiliation reports whether id is a live affiliation.
func (s *Store) HasAffiliation(id AffiliationID) bool {
	_, ok := s.affs.records[id]
	return ok
}

// HasPublication reports whether id is a live publication.
func (s *Store) HasPublication(id PublicationID) bool {
	_, ok := s.pubs.records[id]
	return ok
}

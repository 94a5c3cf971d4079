package dataset

import (
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/store"
)

var (
	// ErrDuplicateAffiliation is returned when an affiliation id is already
	// live or appears twice in a dataset.
	ErrDuplicateAffiliation = stderrors.New("duplicate affiliation")
	// ErrDuplicatePublication is returned when a publication id is already
	// live or appears twice in a dataset.
	ErrDuplicatePublication = stderrors.New("duplicate publication")
	// ErrUnknownReference is returned when a publication names an affiliation
	// or parent that neither the dataset nor the store contains.
	ErrUnknownReference = stderrors.New("unknown reference")
	// ErrReservedID is returned for ids and years equal to a not-found
	// sentinel.
	ErrReservedID = stderrors.New("reserved id")
)

// Stats counts what [Apply] inserted.
type Stats struct {
	Affiliations int `json:"affiliations"`
	Publications int `json:"publications"`
	Links        int `json:"links"`
	References   int `json:"references"`
}

// Add accumulates o into st.
func (st *Stats) Add(o Stats) {
	st.Affiliations += o.Affiliations
	st.Publications += o.Publications
	st.Links += o.Links
	st.References += o.References
}

// Apply inserts ds into s: affiliations first, then publications with their
// affiliation links, then parent references. The dataset is validated
// against s up front, so a rejected dataset leaves s unchanged.
func Apply(s *store.Store, ds *Dataset) (Stats, error) {
	if err := Validate(s, ds); err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, a := range ds.Affiliations {
		if s.AddAffiliation(store.AffiliationID(a.ID), store.Name(a.Name), geo.Coord{X: a.X, Y: a.Y}) {
			st.Affiliations++
		}
	}
	for _, p := range ds.Publications {
		affs := make([]store.AffiliationID, len(p.Affiliations))
		for i, a := range p.Affiliations {
			affs[i] = store.AffiliationID(a)
		}
		if s.AddPublication(store.PublicationID(p.ID), store.Name(p.Title), store.Year(p.Year), affs) {
			st.Publications++
			st.Links += len(affs)
		}
	}
	for _, p := range ds.Publications {
		if p.Parent == nil {
			continue
		}
		if s.AddReference(store.PublicationID(p.ID), store.PublicationID(*p.Parent)) {
			st.References++
		}
	}
	return st, nil
}

// Validate checks ds against s without modifying either. Errors carry
// ErrCodeDuplicate, ErrCodeInvalidReference or ErrCodeInvalidInput and wrap
// one of the sentinel errors of this package.
func Validate(s *store.Store, ds *Dataset) error {
	affs := make(map[string]bool, len(ds.Affiliations))
	for i, a := range ds.Affiliations {
		if err := errors.ValidateAffiliationID(a.ID); err != nil {
			if a.ID == string(store.NoAffiliation) {
				return errors.Wrap(errors.ErrCodeInvalidInput, ErrReservedID, "affiliation #%d", i)
			}
			return fmt.Errorf("affiliation #%d: %w", i, err)
		}
		if affs[a.ID] || s.HasAffiliation(store.AffiliationID(a.ID)) {
			return errors.Wrap(errors.ErrCodeDuplicate, ErrDuplicateAffiliation, "affiliation %s", a.ID)
		}
		affs[a.ID] = true
	}

	pubs := make(map[uint64]bool, len(ds.Publications))
	for _, p := range ds.Publications {
		if store.PublicationID(p.ID) == store.NoPublication {
			return errors.Wrap(errors.ErrCodeInvalidInput, ErrReservedID, "publication %d", p.ID)
		}
		if store.Year(p.Year) == store.NoYear {
			return errors.Wrap(errors.ErrCodeInvalidInput, ErrReservedID, "publication %d: year %d", p.ID, p.Year)
		}
		if pubs[p.ID] || s.HasPublication(store.PublicationID(p.ID)) {
			return errors.Wrap(errors.ErrCodeDuplicate, ErrDuplicatePublication, "publication %d", p.ID)
		}
		pubs[p.ID] = true
	}

	for _, p := range ds.Publications {
		for _, a := range p.Affiliations {
			if !affs[a] && !s.HasAffiliation(store.AffiliationID(a)) {
				return errors.Wrap(errors.ErrCodeInvalidReference, ErrUnknownReference, "publication %d: affiliation %s", p.ID, a)
			}
		}
		if p.Parent != nil && !pubs[*p.Parent] && !s.HasPublication(store.PublicationID(*p.Parent)) {
			return errors.Wrap(errors.ErrCodeInvalidReference, ErrUnknownReference, "publication %d: parent %d", p.ID, *p.Parent)
		}
	}
	return nil
}

// ApplyAll applies each dataset in order and returns the combined counts.
// Datasets applied before a failing one stay in the store.
func ApplyAll(s *store.Store, sets []*Dataset) (Stats, error) {
	var total Stats
	for i, ds := range sets {
		st, err := Apply(s, ds)
		if err != nil {
			return total, fmt.Errorf("dataset #%d: %w", i, err)
		}
		total.Add(st)
	}
	return total, nil
}

// Export snapshots s as a Dataset in insertion order. Applying the result
// to an empty store reproduces every affiliation, publication, link and
// parent edge, but not the order of links and references: a dataset has no
// place to record it, so each affiliation's publications and each parent's
// direct references come back in publication insertion order.
func Export(s *store.Store) *Dataset {
	ds := &Dataset{}
	for _, id := range s.AllAffiliations() {
		xy := s.AffiliationCoord(id)
		ds.Affiliations = append(ds.Affiliations, Affiliation{
			ID:   string(id),
			Name: string(s.AffiliationName(id)),
			X:    xy.X,
			Y:    xy.Y,
		})
	}
	for _, id := range s.AllPublications() {
		p := Publication{
			ID:    uint64(id),
			Title: string(s.PublicationName(id)),
			Year:  uint16(s.PublicationYear(id)),
		}
		for _, a := range s.PublicationAffiliations(id) {
			p.Affiliations = append(p.Affiliations, string(a))
		}
		if parent := s.Parent(id); parent != store.NoPublication {
			v := uint64(parent)
			p.Parent = &v
		}
		ds.Publications = append(ds.Publications, p)
	}
	return ds
}

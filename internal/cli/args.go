package cli

import (
	"strconv"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/store"
)

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", name, s)
	}
	return v, nil
}

func parseCoord(xs, ys string) (geo.Coord, error) {
	x, err := parseInt("x", xs)
	if err != nil {
		return geo.NoCoord, err
	}
	y, err := parseInt("y", ys)
	if err != nil {
		return geo.NoCoord, err
	}
	return geo.Coord{X: x, Y: y}, nil
}

func parsePublicationID(s string) (store.PublicationID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || store.PublicationID(v) == store.NoPublication {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid publication id %q", s)
	}
	return store.PublicationID(v), nil
}

func parseYear(s string) (store.Year, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid year %q", s)
	}
	return store.Year(v), nil
}

func requireAffiliation(s *store.Store, id store.AffiliationID) error {
	if !s.HasAffiliation(id) {
		return errors.New(errors.ErrCodeNotFound, "affiliation %s not found", id)
	}
	return nil
}

func requirePublication(s *store.Store, id store.PublicationID) error {
	if !s.HasPublication(id) {
		return errors.New(errors.ErrCodeNotFound, "publication %d not found", id)
	}
	return nil
}

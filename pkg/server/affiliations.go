package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/store"
)

// Affiliation is the JSON form of an affiliation.
type Affiliation struct {
	ID   store.AffiliationID `json:"id"`
	Name store.Name          `json:"name"`
	X    int                 `json:"x"`
	Y    int                 `json:"y"`
}

// AffiliationDetail adds the affiliation's contributions.
type AffiliationDetail struct {
	Affiliation
	Contributions []store.Contribution `json:"contributions"`
}

type coordRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type idResponse struct {
	ID store.AffiliationID `json:"id"`
}

func (srv *Server) affiliation(id store.AffiliationID) Affiliation {
	xy := srv.store.AffiliationCoord(id)
	return Affiliation{ID: id, Name: srv.store.AffiliationName(id), X: xy.X, Y: xy.Y}
}

func (srv *Server) affiliations(ids []store.AffiliationID) []Affiliation {
	out := make([]Affiliation, len(ids))
	for i, id := range ids {
		out[i] = srv.affiliation(id)
	}
	return out
}

func (srv *Server) listAffiliations(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	var ids []store.AffiliationID
	switch order := r.URL.Query().Get("order"); order {
	case "", "insertion":
		ids = srv.store.AllAffiliations()
	case "name":
		ids = srv.store.AffiliationsAlphabetically()
	case "distance":
		ids = srv.store.AffiliationsDistanceIncreasing()
	default:
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown order %q (want insertion, name or distance)", order))
		return
	}
	writeJSON(w, http.StatusOK, srv.affiliations(ids))
}

func (srv *Server) createAffiliation(w http.ResponseWriter, r *http.Request) {
	var req dataset.Affiliation
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateName(req.Name); err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if _, err := dataset.Apply(srv.store, &dataset.Dataset{Affiliations: []dataset.Affiliation{req}}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, srv.affiliation(store.AffiliationID(req.ID)))
}

func (srv *Server) getAffiliation(w http.ResponseWriter, r *http.Request) {
	id := store.AffiliationID(chi.URLParam(r, "id"))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasAffiliation(id) {
		writeError(w, r, notFoundAffiliation(id))
		return
	}
	writeJSON(w, http.StatusOK, AffiliationDetail{
		Affiliation:   srv.affiliation(id),
		Contributions: srv.store.Contributions(id),
	})
}

func (srv *Server) deleteAffiliation(w http.ResponseWriter, r *http.Request) {
	id := store.AffiliationID(chi.URLParam(r, "id"))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.RemoveAffiliation(id) {
		writeError(w, r, notFoundAffiliation(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) changeCoord(w http.ResponseWriter, r *http.Request) {
	id := store.AffiliationID(chi.URLParam(r, "id"))
	var req coordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "both x and y are required"))
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.ChangeAffiliationCoord(id, geo.Coord{X: *req.X, Y: *req.Y}) {
		writeError(w, r, notFoundAffiliation(id))
		return
	}
	writeJSON(w, http.StatusOK, srv.affiliation(id))
}

func (srv *Server) affiliationPublications(w http.ResponseWriter, r *http.Request) {
	id := store.AffiliationID(chi.URLParam(r, "id"))
	after := r.URL.Query().Get("after")
	var year store.Year
	if after != "" {
		v, err := strconv.ParseUint(after, 10, 16)
		if err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid year %q", after))
			return
		}
		year = store.Year(v)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasAffiliation(id) {
		writeError(w, r, notFoundAffiliation(id))
		return
	}
	if after == "" {
		writeJSON(w, http.StatusOK, srv.store.Contributions(id))
		return
	}
	writeJSON(w, http.StatusOK, srv.store.PublicationsAfter(id, year))
}

func (srv *Server) closestAffiliations(w http.ResponseWriter, r *http.Request) {
	x, err := intQuery(r, "x")
	if err != nil {
		writeError(w, r, err)
		return
	}
	y, err := intQuery(r, "y")
	if err != nil {
		writeError(w, r, err)
		return
	}
	k := store.DefaultClosest
	if r.URL.Query().Has("k") {
		if k, err = intQuery(r, "k"); err != nil {
			writeError(w, r, err)
			return
		}
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	writeJSON(w, http.StatusOK, srv.affiliations(srv.store.ClosestTo(geo.Coord{X: x, Y: y}, k)))
}

func (srv *Server) affiliationAt(w http.ResponseWriter, r *http.Request) {
	x, err := intQuery(r, "x")
	if err != nil {
		writeError(w, r, err)
		return
	}
	y, err := intQuery(r, "y")
	if err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	xy := geo.Coord{X: x, Y: y}
	id := srv.store.FindAffiliationWithCoord(xy)
	if id == store.NoAffiliation {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no affiliation at %s", xy))
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

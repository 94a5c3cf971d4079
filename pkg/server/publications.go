package server

import (
	"net/http"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/store"
)

// Publication is the JSON form of a publication.
type Publication struct {
	ID           store.PublicationID   `json:"id"`
	Title        store.Name            `json:"title"`
	Year         store.Year            `json:"year"`
	Affiliations []store.AffiliationID `json:"affiliations"`
	Parent       *store.PublicationID  `json:"parent,omitempty"`
}

// PublicationDetail adds the direct references and the parent chain.
type PublicationDetail struct {
	Publication
	References []store.PublicationID `json:"references"`
	Chain      []store.PublicationID `json:"chain"`
}

type parentRequest struct {
	Parent *uint64 `json:"parent"`
}

type linkRequest struct {
	Affiliation store.AffiliationID `json:"affiliation"`
}

type commonResponse struct {
	Parent *store.PublicationID `json:"parent"`
}

func (srv *Server) publication(id store.PublicationID) Publication {
	p := Publication{
		ID:           id,
		Title:        srv.store.PublicationName(id),
		Year:         srv.store.PublicationYear(id),
		Affiliations: srv.store.PublicationAffiliations(id),
	}
	if parent := srv.store.Parent(id); parent != store.NoPublication {
		p.Parent = &parent
	}
	return p
}

func (srv *Server) listPublications(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	ids := srv.store.AllPublications()
	out := make([]Publication, len(ids))
	for i, id := range ids {
		out[i] = srv.publication(id)
	}
	writeJSON(w, http.StatusOK, out)
}

func (srv *Server) createPublication(w http.ResponseWriter, r *http.Request) {
	var req dataset.Publication
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateName(req.Title); err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if _, err := dataset.Apply(srv.store, &dataset.Dataset{Publications: []dataset.Publication{req}}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, srv.publication(store.PublicationID(req.ID)))
}

func (srv *Server) getPublication(w http.ResponseWriter, r *http.Request) {
	id, err := publicationParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasPublication(id) {
		writeError(w, r, notFoundPublication(id))
		return
	}
	writeJSON(w, http.StatusOK, PublicationDetail{
		Publication: srv.publication(id),
		References:  srv.store.DirectReferences(id),
		Chain:       srv.store.ReferencedByChain(id),
	})
}

func (srv *Server) deletePublication(w http.ResponseWriter, r *http.Request) {
	id, err := publicationParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.RemovePublication(id) {
		writeError(w, r, notFoundPublication(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) setParent(w http.ResponseWriter, r *http.Request) {
	id, err := publicationParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req parentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Parent == nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "parent is required"))
		return
	}
	parent := store.PublicationID(*req.Parent)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasPublication(id) {
		writeError(w, r, notFoundPublication(id))
		return
	}
	if !srv.store.AddReference(id, parent) {
		writeError(w, r, errors.New(errors.ErrCodeInvalidReference, "parent publication %d does not exist", parent))
		return
	}
	writeJSON(w, http.StatusOK, srv.publication(id))
}

func (srv *Server) linkAffiliation(w http.ResponseWriter, r *http.Request) {
	id, err := publicationParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req linkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasPublication(id) {
		writeError(w, r, notFoundPublication(id))
		return
	}
	if !srv.store.AddAffiliationToPublication(req.Affiliation, id) {
		writeError(w, r, errors.New(errors.ErrCodeInvalidReference, "affiliation %s does not exist", req.Affiliation))
		return
	}
	writeJSON(w, http.StatusOK, srv.publication(id))
}

func (srv *Server) chain(w http.ResponseWriter, r *http.Request) {
	srv.walk(w, r, (*store.Store).ReferencedByChain)
}

func (srv *Server) descendants(w http.ResponseWriter, r *http.Request) {
	srv.walk(w, r, (*store.Store).AllReferences)
}

// walk serves a traversal that starts at the publication in the URL.
func (srv *Server) walk(w http.ResponseWriter, r *http.Request, query func(*store.Store, store.PublicationID) []store.PublicationID) {
	id, err := publicationParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if !srv.store.HasPublication(id) {
		writeError(w, r, notFoundPublication(id))
		return
	}
	writeJSON(w, http.StatusOK, query(srv.store, id))
}

func (srv *Server) commonParent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := parsePublicationID(q.Get("a"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := parsePublicationID(q.Get("b"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	for _, id := range []store.PublicationID{a, b} {
		if !srv.store.HasPublication(id) {
			writeError(w, r, notFoundPublication(id))
			return
		}
	}
	var resp commonResponse
	if p := srv.store.ClosestCommonParent(a, b); p != store.NoPublication {
		resp.Parent = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

package server

import (
	"net/http"

	"github.com/matzehuels/citeforest/pkg/buildinfo"
)

type healthResponse struct {
	Status       string         `json:"status"`
	Build        buildinfo.Info `json:"build"`
	Affiliations int            `json:"affiliations"`
	Publications int            `json:"publications"`
}

func (srv *Server) health(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Build:        buildinfo.Get(),
		Affiliations: srv.store.AffiliationCount(),
		Publications: srv.store.PublicationCount(),
	})
}

func (srv *Server) clearAll(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.store.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

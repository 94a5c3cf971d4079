package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/observability"
	"github.com/matzehuels/citeforest/pkg/store"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func publicationParam(r *http.Request) (store.PublicationID, error) {
	return parsePublicationID(chi.URLParam(r, "id"))
}

func parsePublicationID(s string) (store.PublicationID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || store.PublicationID(v) == store.NoPublication {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid publication id %q", s)
	}
	return store.PublicationID(v), nil
}

func intQuery(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q: not an integer: %q", name, s)
	}
	return v, nil
}

func notFoundAffiliation(id store.AffiliationID) error {
	return errors.New(errors.ErrCodeNotFound, "affiliation %s not found", id)
}

func notFoundPublication(id store.PublicationID) error {
	return errors.New(errors.ErrCodeNotFound, "publication %d not found", id)
}

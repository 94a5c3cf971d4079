package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/citeforest/pkg/errors"
	"github.com/matzehuels/citeforest/pkg/geo"
	"github.com/matzehuels/citeforest/pkg/observability"
	"github.com/matzehuels/citeforest/pkg/store"
)

func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	s := store.New()
	s.AddAffiliation("A", "Org", geo.Coord{X: 0, Y: 0})
	s.AddAffiliation("B", "Beta", geo.Coord{X: 10, Y: 0})
	s.AddAffiliation("C", "Alpha", geo.Coord{X: 3, Y: 4})
	s.AddPublication(1, "Root", 2000, []store.AffiliationID{"A"})
	s.AddPublication(2, "Child", 2005, []store.AffiliationID{"A", "B"})
	s.AddPublication(3, "Grandchild", 2010, nil)
	s.AddPublication(4, "Sibling", 2011, nil)
	s.AddReference(2, 1)
	s.AddReference(3, 2)
	s.AddReference(4, 2)
	return New(s), s
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	return decode[errorBody](t, w).Error.Code
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := do(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[healthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Affiliations)
	assert.Equal(t, 4, resp.Publications)
}

func TestListAffiliations(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		order string
		want  []store.AffiliationID
	}{
		{"", []store.AffiliationID{"A", "B", "C"}},
		{"insertion", []store.AffiliationID{"A", "B", "C"}},
		{"name", []store.AffiliationID{"C", "B", "A"}},
		{"distance", []store.AffiliationID{"A", "C", "B"}},
	}
	for _, tt := range tests {
		t.Run("order="+tt.order, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, "/affiliations?order="+tt.order, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var ids []store.AffiliationID
			for _, a := range decode[[]Affiliation](t, w) {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	w := do(t, srv, http.MethodGet, "/affiliations?order=random", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.ErrCodeInvalidInput, errorCode(t, w))
}

func TestCreateAffiliation(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodPost, "/affiliations", map[string]any{"id": "D", "name": "Delta", "x": 1, "y": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, Affiliation{ID: "D", Name: "Delta", X: 1, Y: 1}, decode[Affiliation](t, w))
	assert.Equal(t, store.Name("Delta"), s.AffiliationName("D"))

	w = do(t, srv, http.MethodPost, "/affiliations", map[string]any{"id": "A", "name": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, errors.ErrCodeDuplicate, errorCode(t, w))
	assert.Equal(t, store.Name("Org"), s.AffiliationName("A"))

	w = do(t, srv, http.MethodPost, "/affiliations", map[string]any{"id": "bad id", "name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/affiliations", map[string]any{"id": "E", "name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/affiliations", map[string]any{"id": "E", "name": "e", "colour": "red"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndDeleteAffiliation(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodGet, "/affiliations/A", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[AffiliationDetail](t, w)
	assert.Equal(t, store.Name("Org"), detail.Name)
	assert.Equal(t, []store.Contribution{{Publication: 1, Year: 2000}, {Publication: 2, Year: 2005}}, detail.Contributions)

	w = do(t, srv, http.MethodGet, "/affiliations/Z", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errors.ErrCodeNotFound, errorCode(t, w))

	w = do(t, srv, http.MethodDelete, "/affiliations/A", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, s.HasAffiliation("A"))
	assert.Equal(t, []store.AffiliationID{"B"}, s.PublicationAffiliations(2))

	w = do(t, srv, http.MethodDelete, "/affiliations/A", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangeCoord(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodPut, "/affiliations/B/coord", map[string]int{"x": 1, "y": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, geo.Coord{X: 1, Y: 0}, s.AffiliationCoord("B"))

	w = do(t, srv, http.MethodGet, "/affiliations?order=distance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, store.AffiliationID("B"), decode[[]Affiliation](t, w)[1].ID)

	w = do(t, srv, http.MethodPut, "/affiliations/Z/coord", map[string]int{"x": 1, "y": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPut, "/affiliations/B/coord", map[string]int{"x": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAffiliationPublications(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := do(t, srv, http.MethodGet, "/affiliations/A/publications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]store.Contribution](t, w), 2)

	w = do(t, srv, http.MethodGet, "/affiliations/A/publications?after=2001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []store.YearPublication{{Year: 2005, Publication: 2}}, decode[[]store.YearPublication](t, w))

	w = do(t, srv, http.MethodGet, "/affiliations/A/publications?after=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/affiliations/Z/publications?after=2001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClosestAndAt(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := do(t, srv, http.MethodGet, "/affiliations/closest?x=9&y=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]Affiliation](t, w)
	require.Len(t, got, 3)
	assert.Equal(t, store.AffiliationID("B"), got[0].ID)

	w = do(t, srv, http.MethodGet, "/affiliations/closest?x=9&y=0&k=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]Affiliation](t, w), 1)

	w = do(t, srv, http.MethodGet, "/affiliations/closest?x=9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/affiliations/at?x=3&y=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, idResponse{ID: "C"}, decode[idResponse](t, w))

	w = do(t, srv, http.MethodGet, "/affiliations/at?x=3&y=5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePublication(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodPost, "/publications", map[string]any{
		"id": 5, "title": "New", "year": 2020, "affiliations": []string{"C"}, "parent": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[Publication](t, w)
	assert.Equal(t, []store.AffiliationID{"C"}, p.Affiliations)
	require.NotNil(t, p.Parent)
	assert.Equal(t, store.PublicationID(3), *p.Parent)
	assert.Equal(t, []store.PublicationID{3, 2, 1}, s.ReferencedByChain(5))

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   errors.Code
	}{
		{"duplicate", map[string]any{"id": 1, "title": "x"}, http.StatusConflict, errors.ErrCodeDuplicate},
		{"unknown affiliation", map[string]any{"id": 6, "title": "x", "affiliations": []string{"Z"}}, http.StatusUnprocessableEntity, errors.ErrCodeInvalidReference},
		{"unknown parent", map[string]any{"id": 6, "title": "x", "parent": 99}, http.StatusUnprocessableEntity, errors.ErrCodeInvalidReference},
		{"missing title", map[string]any{"id": 6}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/publications", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.False(t, s.HasPublication(6))
		})
	}
}

func TestGetPublication(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := do(t, srv, http.MethodGet, "/publications/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[PublicationDetail](t, w)
	assert.Equal(t, store.Name("Child"), p.Title)
	assert.Equal(t, []store.AffiliationID{"A", "B"}, p.Affiliations)
	assert.Equal(t, []store.PublicationID{3, 4}, p.References)
	assert.Equal(t, []store.PublicationID{1}, p.Chain)

	w = do(t, srv, http.MethodGet, "/publications/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/publications/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/publications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]Publication](t, w)
	require.Len(t, list, 4)
	assert.Nil(t, list[0].Parent)
}

func TestPublicationTraversals(t *testing.T) {
	srv, _ := setupTestServer(t)

	w := do(t, srv, http.MethodGet, "/publications/3/chain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []store.PublicationID{2, 1}, decode[[]store.PublicationID](t, w))

	w = do(t, srv, http.MethodGet, "/publications/1/descendants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []store.PublicationID{2, 3, 4}, decode[[]store.PublicationID](t, w))

	w = do(t, srv, http.MethodGet, "/publications/99/chain", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/publications/common?a=3&b=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[commonResponse](t, w)
	require.NotNil(t, resp.Parent)
	assert.Equal(t, store.PublicationID(2), *resp.Parent)

	w = do(t, srv, http.MethodGet, "/publications/common?a=1&b=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[commonResponse](t, w).Parent)

	w = do(t, srv, http.MethodGet, "/publications/common?a=1&b=99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetParentAndLink(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodPost, "/publications/4/parent", map[string]uint64{"parent": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, store.PublicationID(3), s.Parent(4))
	assert.Equal(t, []store.PublicationID{3}, s.DirectReferences(2))

	w = do(t, srv, http.MethodPost, "/publications/4/parent", map[string]uint64{"parent": 99})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, store.PublicationID(3), s.Parent(4))

	w = do(t, srv, http.MethodPost, "/publications/99/parent", map[string]uint64{"parent": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/publications/4/affiliations", map[string]string{"affiliation": "C"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []store.PublicationID{4}, s.Publications("C"))

	w = do(t, srv, http.MethodPost, "/publications/4/affiliations", map[string]string{"affiliation": "Z"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeletePublicationAndClear(t *testing.T) {
	srv, s := setupTestServer(t)

	w := do(t, srv, http.MethodDelete, "/publications/2", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, store.NoPublication, s.Parent(3))
	assert.Equal(t, []store.PublicationID{1}, s.Publications("A"))

	w = do(t, srv, http.MethodDelete, "/publications/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodDelete, "/", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, s.AffiliationCount())
	assert.Zero(t, s.PublicationCount())
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
	errs     int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) { h.errs++ }

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv, _ := setupTestServer(t)
	do(t, srv, http.MethodGet, "/healthz", nil)
	do(t, srv, http.MethodGet, "/publications/99", nil)

	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.statuses)
	assert.Equal(t, 1, hooks.errs)
}

func TestListenAndServe(t *testing.T) {
	srv, _ := setupTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a }) }()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-errc:
		t.Fatalf("ListenAndServe: %v", err)
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

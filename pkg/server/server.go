package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/citeforest/pkg/observability"
	"github.com/matzehuels/citeforest/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Server serves one store over HTTP.
type Server struct {
	mu     sync.Mutex
	store  *store.Store
	router chi.Router
}

// New returns a Server backed by s. The caller must not use s directly
// while the server is running.
func New(s *store.Store) *Server {
	srv := &Server{store: s}
	srv.router = srv.routes()
	return srv
}

// ServeHTTP implements http.Handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

func (srv *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", srv.health)
	r.Delete("/", srv.clearAll)

	r.Route("/affiliations", func(r chi.Router) {
		r.Get("/", srv.listAffiliations)
		r.Post("/", srv.createAffiliation)
		r.Get("/closest", srv.closestAffiliations)
		r.Get("/at", srv.affiliationAt)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", srv.getAffiliation)
			r.Delete("/", srv.deleteAffiliation)
			r.Put("/coord", srv.changeCoord)
			r.Get("/publications", srv.affiliationPublications)
		})
	})

	r.Route("/publications", func(r chi.Router) {
		r.Get("/", srv.listPublications)
		r.Post("/", srv.createPublication)
		r.Get("/common", srv.commonParent)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", srv.getPublication)
			r.Delete("/", srv.deletePublication)
			r.Post("/parent", srv.setParent)
			r.Post("/affiliations", srv.linkAffiliation)
			r.Get("/chain", srv.chain)
			r.Get("/descendants", srv.descendants)
		})
	})
	return r
}

// instrument reports every request to the registered HTTP hooks.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. ready, if non-nil, receives the bound address once the
// listener is open.
func (srv *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if ready != nil {
		ready(ln.Addr())
	}

	hs := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

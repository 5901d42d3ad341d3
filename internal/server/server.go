// Package server exposes a skeleton graph over HTTP.
//
// The server owns one [sparse.Graph] guarded by a read/write mutex. Handlers
// that only read (lookups, export, render) take the read lock; mutations
// take the write lock, so each request sees the graph between operations,
// never during one.
//
// Routes:
//
//	GET    /healthz
//	GET    /graph                         counts and next ids
//	GET    /vertices                      ascending vertex ids
//	POST   /vertices                      {"point":[x,y,z],"distance":d,"subgraph_id":n}
//	GET    /vertices/{id}
//	DELETE /vertices/{id}                 cascades to incident edges
//	GET    /edges
//	POST   /edges                         {"start":a,"end":b}
//	GET    /edges/{id}
//	DELETE /edges/{id}
//	GET    /connected?a=&b=
//	POST   /transform                     TOML [[step]] document
//	POST   /clear
//	GET    /export                        graph JSON
//	POST   /import                        graph JSON, replaces the graph
//	GET    /render?format=&plane=&detailed=
//	GET    /snapshots
//	POST   /snapshots?name=
//	POST   /snapshots/{id}/restore
//	DELETE /snapshots/{id}
//
// Errors are JSON objects {"code": ..., "message": ...} with the status
// given by [serrors.HTTPStatus].
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/skelgraph/pkg/pipeline"
	"github.com/matzehuels/skelgraph/pkg/sparse"
	"github.com/matzehuels/skelgraph/pkg/store"
)

// Options configures a Server. All fields are optional.
type Options struct {
	Runner *pipeline.Runner // renders /render; defaults to an uncached runner
	Store  store.Store      // backs /snapshots; nil disables those routes
	Logger *log.Logger
}

// Server serves one skeleton graph.
type Server struct {
	mu     sync.RWMutex
	graph  *sparse.Graph
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server for g. A nil g starts from an empty graph.
func New(g *sparse.Graph, opts Options) *Server {
	if g == nil {
		g = sparse.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		graph:  g,
		runner: opts.Runner,
		store:  opts.Store,
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleStats)

	r.Route("/vertices", func(r chi.Router) {
		r.Get("/", s.handleListVertices)
		r.Post("/", s.handleAddVertex)
		r.Get("/{id}", s.handleGetVertex)
		r.Delete("/{id}", s.handleRemoveVertex)
	})
	r.Route("/edges", func(r chi.Router) {
		r.Get("/", s.handleListEdges)
		r.Post("/", s.handleAddEdge)
		r.Get("/{id}", s.handleGetEdge)
		r.Delete("/{id}", s.handleRemoveEdge)
	})
	r.Get("/connected", s.handleConnected)

	r.Post("/transform", s.handleTransform)
	r.Post("/clear", s.handleClear)
	r.Get("/export", s.handleExport)
	r.Post("/import", s.handleImport)
	r.Get("/render", s.handleRender)

	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.handleListSnapshots)
		r.Post("/", s.handlePutSnapshot)
		r.Post("/{id}/restore", s.handleRestoreSnapshot)
		r.Delete("/{id}", s.handleDeleteSnapshot)
	})
	return r
}

// logRequests logs one line per request at info level, or warn for 5xx.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logf := s.logger.Info
		if status >= http.StatusInternalServerError {
			logf = s.logger.Warn
		}
		logf("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests five seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}

package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/pipeline"
	"github.com/matzehuels/skelgraph/pkg/render/nodelink"
)

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	T, err := skelio.ReadTransform(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "invalid transform: %v", err))
		return
	}

	s.mu.Lock()
	s.graph.TransformFrame(T)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.graph.Clear()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data, err := skelio.MarshalGraph(s.graph)
	s.mu.RUnlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	g, err := skelio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		err = classify(err)
		if serrors.Is(err, serrors.ErrCodeInternal) {
			err = serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "invalid graph: %v", err)
		}
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()
	s.logger.Info("graph imported", "vertices", g.VertexCount(), "edges", g.EdgeCount())
	s.writeJSON(w, http.StatusOK, statsOf(g))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format: q.Get("format"),
		Plane:  q.Get("plane"),
	}
	if opts.Format != "" {
		if err := serrors.ValidateChoice("format", opts.Format, pipeline.FormatDOT, pipeline.FormatSVG); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if opts.Plane != "" {
		if err := serrors.ValidateChoice("plane", opts.Plane, nodelink.Planes...); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if raw := q.Get("detailed"); raw != "" {
		detailed, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, serrors.New(serrors.ErrCodeInvalidInput, "invalid detailed flag: %q", raw))
			return
		}
		opts.Detailed = detailed
	}

	s.mu.RLock()
	res, err := s.runner.Render(r.Context(), s.graph, opts)
	s.mu.RUnlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := "image/svg+xml"
	if opts.Format == pipeline.FormatDOT {
		contentType = "text/vnd.graphviz"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Graph-Hash", res.GraphHash)
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	w.Write(res.Data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, serrors.New(serrors.ErrCodeUnsupported, "snapshot store not configured"))
		return false
	}
	return true
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	s.mu.RLock()
	snap, err := s.store.Put(r.Context(), r.URL.Query().Get("name"), s.graph)
	s.mu.RUnlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, statsOf(g))
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

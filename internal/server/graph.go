package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

type statsResponse struct {
	Vertices     int   `json:"vertices"`
	Edges        int   `json:"edges"`
	NextVertexID int64 `json:"next_vertex_id"`
	NextEdgeID   int64 `json:"next_edge_id"`
}

type vertexRequest struct {
	Point      [3]float64 `json:"point"`
	Distance   float64    `json:"distance"`
	SubgraphID int        `json:"subgraph_id"`
}

type vertexResponse struct {
	ID         int64      `json:"id"`
	Point      [3]float64 `json:"point"`
	Distance   float64    `json:"distance"`
	SubgraphID int        `json:"subgraph_id"`
	Edges      []int64    `json:"edges"`
}

type edgeRequest struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type edgeResponse struct {
	ID            int64      `json:"id"`
	Start         int64      `json:"start"`
	End           int64      `json:"end"`
	StartPoint    [3]float64 `json:"start_point"`
	EndPoint      [3]float64 `json:"end_point"`
	StartDistance float64    `json:"start_distance"`
	EndDistance   float64    `json:"end_distance"`
	Length        float64    `json:"length"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type connectedResponse struct {
	Connected bool `json:"connected"`
}

func statsOf(g *sparse.Graph) statsResponse {
	return statsResponse{
		Vertices:     g.VertexCount(),
		Edges:        g.EdgeCount(),
		NextVertexID: int64(g.NextVertexID()),
		NextEdgeID:   int64(g.NextEdgeID()),
	}
}

func toVertexResponse(v *sparse.Vertex) vertexResponse {
	edges := make([]int64, len(v.Edges))
	for i, e := range v.Edges {
		edges[i] = int64(e)
	}
	return vertexResponse{
		ID:         int64(v.ID),
		Point:      v.Point.Array(),
		Distance:   v.Distance,
		SubgraphID: v.SubgraphID,
		Edges:      edges,
	}
}

func toEdgeResponse(e *sparse.Edge) edgeResponse {
	return edgeResponse{
		ID:            int64(e.ID),
		Start:         int64(e.Start),
		End:           int64(e.End),
		StartPoint:    e.StartPoint.Array(),
		EndPoint:      e.EndPoint.Array(),
		StartDistance: e.StartDistance,
		EndDistance:   e.EndDistance,
		Length:        e.Length(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := statsOf(s.graph)
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVertices(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := s.graph.VertexIDs()
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleAddVertex(w http.ResponseWriter, r *http.Request) {
	var req vertexRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	id := s.graph.AddVertex(sparse.Vertex{
		Point:      geom.FromArray(req.Point),
		Distance:   req.Distance,
		SubgraphID: req.SubgraphID,
	})
	s.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, idResponse{ID: int64(id)})
}

func (s *Server) handleGetVertex(w http.ResponseWriter, r *http.Request) {
	id, err := serrors.ParseEntityID("vertex", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.graph.Vertex(sparse.VertexID(id))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toVertexResponse(v))
}

func (s *Server) handleRemoveVertex(w http.ResponseWriter, r *http.Request) {
	id, err := serrors.ParseEntityID("vertex", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	found := s.graph.HasVertex(sparse.VertexID(id))
	s.graph.RemoveVertex(sparse.VertexID(id))
	s.mu.Unlock()
	if !found {
		s.writeError(w, serrors.New(serrors.ErrCodeVertexNotFound, "vertex %d not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEdges(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := s.graph.EdgeIDs()
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	id, err := s.graph.AddEdge(sparse.Edge{
		Start: sparse.VertexID(req.Start),
		End:   sparse.VertexID(req.End),
	})
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, idResponse{ID: int64(id)})
}

func (s *Server) handleGetEdge(w http.ResponseWriter, r *http.Request) {
	id, err := serrors.ParseEntityID("edge", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.graph.Edge(sparse.EdgeID(id))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toEdgeResponse(e))
}

func (s *Server) handleRemoveEdge(w http.ResponseWriter, r *http.Request) {
	id, err := serrors.ParseEntityID("edge", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	found := s.graph.HasEdge(sparse.EdgeID(id))
	s.graph.RemoveEdge(sparse.EdgeID(id))
	s.mu.Unlock()
	if !found {
		s.writeError(w, serrors.New(serrors.ErrCodeEdgeNotFound, "edge %d not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConnected(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := serrors.ParseEntityID("vertex", q.Get("a"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, err := serrors.ParseEntityID("vertex", q.Get("b"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.RLock()
	ok := s.graph.AreVerticesDirectlyConnected(sparse.VertexID(a), sparse.VertexID(b))
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, connectedResponse{Connected: ok})
}

package sparse

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrVertexNotFound is returned by [Graph.Vertex] for an unknown id, and by
	// [Graph.AddEdge] when either endpoint does not exist.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrEdgeNotFound is returned by [Graph.Edge] for an unknown id.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDanglingEdge is returned by [Graph.Validate] when an edge references
	// a vertex that is not in the graph.
	ErrDanglingEdge = errors.New("edge references missing vertex")

	// ErrAdjacencyMismatch is returned by [Graph.Validate] when a vertex lists
	// an edge that does not exist or is not incident to it.
	ErrAdjacencyMismatch = errors.New("adjacency list does not match edges")

	// ErrIDSpaceExhausted is returned by [Graph.SyncIDCounters] when a live
	// id leaves no room for the next allocation.
	ErrIDSpaceExhausted = errors.New("id space exhausted")
)

// Graph is a sparse skeleton graph: 3-D vertices joined by straight edges.
//
// Vertices and edges live in two id-indexed stores and refer to each other
// only by id. Ids are allocated from two monotonic counters that restart at
// zero after [Graph.Clear].
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	vertices     map[VertexID]*Vertex
	edges        map[EdgeID]*Edge
	nextVertexID VertexID
	nextEdgeID   EdgeID
}

// New creates an empty graph whose first allocated ids are 0.
func New() *Graph {
	return &Graph{
		vertices: make(map[VertexID]*Vertex),
		edges:    make(map[EdgeID]*Edge),
	}
}

// AddVertex stores a copy of v under a freshly allocated id and returns it.
// Whatever v.ID held is overwritten. The Edges slice is copied so the caller
// keeps ownership of its own backing array.
func (g *Graph) AddVertex(v Vertex) VertexID {
	id := g.nextVertexID
	g.nextVertexID++

	v.ID = id
	v.Edges = slices.Clone(v.Edges)
	g.vertices[id] = &v
	return id
}

// AddEdge stores a copy of e under a freshly allocated id, attaches the id
// to both endpoints' adjacency lists and snapshots the endpoint points and
// distances into the edge.
//
// Returns ErrVertexNotFound if e.Start or e.End is not in the graph; in that
// case nothing is modified and no id is consumed. A self-loop (Start == End)
// is accepted and lists the edge twice on its vertex.
func (g *Graph) AddEdge(e Edge) (EdgeID, error) {
	start, ok := g.vertices[e.Start]
	if !ok {
		return 0, fmt.Errorf("start vertex %d: %w", e.Start, ErrVertexNotFound)
	}
	end, ok := g.vertices[e.End]
	if !ok {
		return 0, fmt.Errorf("end vertex %d: %w", e.End, ErrVertexNotFound)
	}

	id := g.nextEdgeID
	g.nextEdgeID++

	e.ID = id
	e.StartPoint, e.StartDistance = start.Point, start.Distance
	e.EndPoint, e.EndDistance = end.Point, end.Distance
	g.edges[id] = &e

	start.Edges = append(start.Edges, id)
	end.Edges = append(end.Edges, id)
	return id, nil
}

// HasVertex reports whether a vertex with the given id exists.
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertices[id]
	return ok
}

// HasEdge reports whether an edge with the given id exists.
func (g *Graph) HasEdge(id EdgeID) bool {
	_, ok := g.edges[id]
	return ok
}

// Vertex returns the stored vertex with the given id, or an error wrapping
// ErrVertexNotFound. The pointer refers to the graph's own copy, so changes
// through it are visible to the graph. Changing ID or Edges through it
// breaks the graph's invariants; changing Point does not refresh the cached
// points of incident edges.
func (g *Graph) Vertex(id VertexID) (*Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, fmt.Errorf("vertex %d: %w", id, ErrVertexNotFound)
	}
	return v, nil
}

// Edge returns the stored edge with the given id, or an error wrapping
// ErrEdgeNotFound. The same aliasing rules as [Graph.Vertex] apply.
func (g *Graph) Edge(id EdgeID) (*Edge, error) {
	e, ok := g.edges[id]
	if !ok {
		return nil, fmt.Errorf("edge %d: %w", id, ErrEdgeNotFound)
	}
	return e, nil
}

// RemoveVertex removes the vertex and every edge incident to it. Each removed
// edge is also unlinked from its other endpoint. Removing an unknown id is a
// no-op.
func (g *Graph) RemoveVertex(id VertexID) {
	v, ok := g.vertices[id]
	if !ok {
		return
	}
	// RemoveEdge edits v.Edges, so walk a snapshot. The vertex stays in the
	// store until its edges are gone because RemoveEdge looks it up.
	for _, eid := range slices.Clone(v.Edges) {
		g.RemoveEdge(eid)
	}
	delete(g.vertices, id)
}

// RemoveEdge removes the edge and drops its id from both endpoints'
// adjacency lists. Only the first occurrence is dropped per endpoint.
// Removing an unknown id is a no-op.
func (g *Graph) RemoveEdge(id EdgeID) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	g.unlink(e.Start, id)
	g.unlink(e.End, id)
	delete(g.edges, id)
}

// unlink drops the first occurrence of eid from vertex vid's adjacency list.
// Endpoints missing from the store (possible after a partial restore) are
// skipped.
func (g *Graph) unlink(vid VertexID, eid EdgeID) {
	v, ok := g.vertices[vid]
	if !ok {
		return
	}
	if i := slices.Index(v.Edges, eid); i >= 0 {
		v.Edges = slices.Delete(v.Edges, i, i+1)
	}
}

// AreVerticesDirectlyConnected reports whether an edge joins a and b.
// The cost is proportional to the degree of a. Returns false if a does not
// exist.
func (g *Graph) AreVerticesDirectlyConnected(a, b VertexID) bool {
	v, ok := g.vertices[a]
	if !ok {
		return false
	}
	for _, eid := range v.Edges {
		if e, ok := g.edges[eid]; ok && (e.Start == b || e.End == b) {
			return true
		}
	}
	return false
}

// Degree returns the number of entries in the vertex's adjacency list, or 0
// if it does not exist. A self-loop counts twice.
func (g *Graph) Degree(id VertexID) int {
	if v, ok := g.vertices[id]; ok {
		return len(v.Edges)
	}
	return 0
}

// VertexIDs returns the ids of all vertices in ascending order.
func (g *Graph) VertexIDs() []VertexID {
	return slices.Sorted(maps.Keys(g.vertices))
}

// EdgeIDs returns the ids of all edges in ascending order.
func (g *Graph) EdgeIDs() []EdgeID {
	return slices.Sorted(maps.Keys(g.edges))
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NextVertexID returns the id the next AddVertex call will allocate.
func (g *Graph) NextVertexID() VertexID { return g.nextVertexID }

// NextEdgeID returns the id the next AddEdge call will allocate.
func (g *Graph) NextEdgeID() EdgeID { return g.nextEdgeID }

// TransformFrame applies t to every vertex point and, independently, to
// both cached points of every edge. Caches that matched their vertices
// before the call still match afterwards.
func (g *Graph) TransformFrame(t Transformer) {
	for _, v := range g.vertices {
		v.Point = t.Apply(v.Point)
	}
	for _, e := range g.edges {
		e.StartPoint = t.Apply(e.StartPoint)
		e.EndPoint = t.Apply(e.EndPoint)
	}
}

// Clear removes all vertices and edges and resets both id counters to 0.
func (g *Graph) Clear() {
	clear(g.vertices)
	clear(g.edges)
	g.nextVertexID = 0
	g.nextEdgeID = 0
}

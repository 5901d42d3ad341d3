package sparse

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

// AddSerializedVertex inserts v under v.ID, replacing any vertex already
// stored there. It is meant for restoring a previously saved graph: the id
// counters are left alone and the adjacency list is taken as given, so the
// caller must supply mutually consistent vertices and edges.
//
// Call [Graph.SyncIDCounters] once the batch is loaded, otherwise the next
// AddVertex may hand out an id that is already in use.
func (g *Graph) AddSerializedVertex(v Vertex) {
	v.Edges = slices.Clone(v.Edges)
	g.vertices[v.ID] = &v
}

// AddSerializedEdge inserts e under e.ID, replacing any edge already stored
// there. Endpoint adjacency and cached points are not touched. See
// [Graph.AddSerializedVertex] for the counter caveat.
func (g *Graph) AddSerializedEdge(e Edge) {
	g.edges[e.ID] = &e
}

// SyncIDCounters advances each id counter past the largest live id, so that
// fresh allocations cannot collide with restored entities. Counters are
// never moved backwards.
//
// It returns ErrIDSpaceExhausted, leaving both counters unchanged, when a
// live id is the largest representable id and no fresh id can follow it.
func (g *Graph) SyncIDCounters() error {
	nextV, err := nextAfter(maps.Keys(g.vertices), g.nextVertexID)
	if err != nil {
		return fmt.Errorf("vertex %w", err)
	}
	nextE, err := nextAfter(maps.Keys(g.edges), g.nextEdgeID)
	if err != nil {
		return fmt.Errorf("edge %w", err)
	}
	g.nextVertexID, g.nextEdgeID = nextV, nextE
	return nil
}

func nextAfter[ID ~int64](ids iter.Seq[ID], cur ID) (ID, error) {
	for id := range ids {
		if id == math.MaxInt64 {
			return cur, fmt.Errorf("id %d: %w", id, ErrIDSpaceExhausted)
		}
		if id >= cur {
			cur = id + 1
		}
	}
	return cur, nil
}

// Validate checks the structural invariants of the graph and returns nil if
// they hold:
//   - every edge endpoint is a stored vertex (else ErrDanglingEdge)
//   - every id in a vertex's adjacency list names a stored edge incident to
//     that vertex, and every edge appears in both endpoints' lists
//     (else ErrAdjacencyMismatch)
//
// Cached edge points are not compared with vertex points; drift between the
// two is permitted. Validate is O(V+E) and visits ids in ascending order, so
// the reported error is deterministic.
func (g *Graph) Validate() error {
	for _, eid := range g.EdgeIDs() {
		e := g.edges[eid]
		for _, vid := range []VertexID{e.Start, e.End} {
			v, ok := g.vertices[vid]
			if !ok {
				return fmt.Errorf("edge %d -> vertex %d: %w", eid, vid, ErrDanglingEdge)
			}
			if !slices.Contains(v.Edges, eid) {
				return fmt.Errorf("edge %d not listed on vertex %d: %w", eid, vid, ErrAdjacencyMismatch)
			}
		}
	}
	for _, vid := range g.VertexIDs() {
		for _, eid := range g.vertices[vid].Edges {
			e, ok := g.edges[eid]
			if !ok {
				return fmt.Errorf("vertex %d lists unknown edge %d: %w", vid, eid, ErrAdjacencyMismatch)
			}
			if !e.Touches(vid) {
				return fmt.Errorf("vertex %d lists edge %d (%d-%d): %w", vid, eid, e.Start, e.End, ErrAdjacencyMismatch)
			}
		}
	}
	return nil
}

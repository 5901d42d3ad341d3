package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// ErrDuplicateID is returned by [ReadJSON] when two vertices or two edges
// share an id.
var ErrDuplicateID = errors.New("duplicate id")

// ReadJSON decodes a JSON graph from r.
//
// Entities are inserted under their saved ids through the graph's restore
// path, so ids, adjacency order and cached edge points come back exactly as
// written. After loading, the id counters are advanced past the largest
// restored ids and the graph is validated.
//
// ReadJSON returns an error if:
//   - the JSON is malformed
//   - two vertices or two edges share an id (ErrDuplicateID)
//   - an id is too large to allocate past (sparse.ErrIDSpaceExhausted)
//   - an edge references a missing vertex (sparse.ErrDanglingEdge)
//   - adjacency lists disagree with the edges (sparse.ErrAdjacencyMismatch)
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*sparse.Graph, error) {
	g, err := ReadJSONUnchecked(r)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return g, nil
}

// ReadJSONUnchecked is [ReadJSON] without the final [sparse.Graph.Validate]
// call. The result may hold dangling edges or inconsistent adjacency; it is
// meant for diagnostics on damaged files.
func ReadJSONUnchecked(r io.Reader) (*sparse.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := sparse.New()
	for _, v := range data.Vertices {
		id := sparse.VertexID(v.ID)
		if g.HasVertex(id) {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, ErrDuplicateID)
		}
		edges := make([]sparse.EdgeID, len(v.Edges))
		for i, eid := range v.Edges {
			edges[i] = sparse.EdgeID(eid)
		}
		g.AddSerializedVertex(sparse.Vertex{
			ID:         id,
			Point:      geom.FromArray(v.Point),
			Edges:      edges,
			Distance:   v.Distance,
			SubgraphID: v.SubgraphID,
		})
	}
	for _, e := range data.Edges {
		id := sparse.EdgeID(e.ID)
		if g.HasEdge(id) {
			return nil, fmt.Errorf("edge %d: %w", e.ID, ErrDuplicateID)
		}
		g.AddSerializedEdge(sparse.Edge{
			ID:            id,
			Start:         sparse.VertexID(e.Start),
			End:           sparse.VertexID(e.End),
			StartPoint:    geom.FromArray(e.StartPoint),
			EndPoint:      geom.FromArray(e.EndPoint),
			StartDistance: e.StartDistance,
			EndDistance:   e.EndDistance,
		})
	}

	if err := g.SyncIDCounters(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same errors as [ReadJSON], wrapped with the path.
func ImportJSON(path string) (*sparse.Graph, error) {
	return importFile(path, ReadJSON)
}

// ImportJSONUnchecked reads a JSON file at path with [ReadJSONUnchecked].
func ImportJSONUnchecked(path string) (*sparse.Graph, error) {
	return importFile(path, ReadJSONUnchecked)
}

func importFile(path string, read func(io.Reader) (*sparse.Graph, error)) (*sparse.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/skelgraph/pkg/sparse"
)

type graph struct {
	Vertices []vertex `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type vertex struct {
	ID         int64      `json:"id"`
	Point      [3]float64 `json:"point"`
	Distance   float64    `json:"distance,omitempty"`
	SubgraphID int        `json:"subgraph_id,omitempty"`
	Edges      []int64    `json:"edges"`
}

type edge struct {
	ID            int64      `json:"id"`
	Start         int64      `json:"start"`
	End           int64      `json:"end"`
	StartPoint    [3]float64 `json:"start_point"`
	EndPoint      [3]float64 `json:"end_point"`
	StartDistance float64    `json:"start_distance,omitempty"`
	EndDistance   float64    `json:"end_distance,omitempty"`
}

// WriteJSON encodes g as JSON and writes it to w.
// Vertices and edges are written in ascending id order with their ids,
// adjacency lists and cached edge points, so [ReadJSON] restores the same id
// space.
func WriteJSON(g *sparse.Graph, w io.Writer) error {
	out := graph{
		Vertices: make([]vertex, 0, g.VertexCount()),
		Edges:    make([]edge, 0, g.EdgeCount()),
	}

	for _, id := range g.VertexIDs() {
		v, err := g.Vertex(id)
		if err != nil {
			return err
		}
		vd := vertex{
			ID:         int64(v.ID),
			Point:      v.Point.Array(),
			Distance:   v.Distance,
			SubgraphID: v.SubgraphID,
			Edges:      make([]int64, len(v.Edges)),
		}
		for i, eid := range v.Edges {
			vd.Edges[i] = int64(eid)
		}
		out.Vertices = append(out.Vertices, vd)
	}
	for _, id := range g.EdgeIDs() {
		e, err := g.Edge(id)
		if err != nil {
			return err
		}
		out.Edges = append(out.Edges, edge{
			ID:            int64(e.ID),
			Start:         int64(e.Start),
			End:           int64(e.End),
			StartPoint:    e.StartPoint.Array(),
			EndPoint:      e.EndPoint.Array(),
			StartDistance: e.StartDistance,
			EndDistance:   e.EndDistance,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph returns the JSON encoding of g. The output is deterministic
// for a given graph, which makes it usable as a cache key source.
func MarshalGraph(g *sparse.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *sparse.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

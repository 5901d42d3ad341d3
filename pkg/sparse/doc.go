// Package sparse provides a sparse topological graph for skeletons: labeled
// 3-D points connected by straight segments.
//
// # Overview
//
// A [Graph] owns two stores, one for [Vertex] values and one for [Edge]
// values, keyed by [VertexID] and [EdgeID]. Vertices and edges never point at
// each other directly; each vertex keeps the ids of its incident edges and
// each edge keeps the ids of its two endpoints. All lookups go through the
// owning graph.
//
// # Building
//
// Vertices are added first, then edges between existing vertices:
//
//	g := sparse.New()
//	a := g.AddVertex(sparse.Vertex{Point: geom.Point{X: 0}})
//	b := g.AddVertex(sparse.Vertex{Point: geom.Point{X: 1}})
//	e, err := g.AddEdge(sparse.Edge{Start: a, End: b})
//
// AddEdge copies the endpoint points into the edge. That copy is a cache: it
// follows [Graph.TransformFrame] but not direct edits to a vertex's Point.
//
// # Removal
//
// [Graph.RemoveEdge] unlinks an edge from both endpoints. [Graph.RemoveVertex]
// removes a vertex together with every incident edge, so no surviving vertex
// ever lists a dead edge. Both are no-ops for unknown ids.
//
// # Ids
//
// Fresh ids come from two counters that start at 0, only grow, and reset on
// [Graph.Clear]. The restore path ([Graph.AddSerializedVertex],
// [Graph.AddSerializedEdge]) inserts entities under their saved ids without
// touching the counters; follow it with [Graph.SyncIDCounters] and
// [Graph.Validate].
//
// # Concurrency
//
// Graph has no internal locking. Share it between goroutines only behind an
// external mutex.
package sparse

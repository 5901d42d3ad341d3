// Package pkg holds the libraries behind skelgraph, a toolkit for sparse
// skeleton graphs: undirected graphs of 3-D points extracted from
// volumetric maps, used for path planning and topology analysis.
//
// # Layout
//
//   - [sparse] - the graph container: vertices, edges, cascading removal,
//     frame transforms, and the serialized restore path
//   - [geom] - points, quaternions and rigid transforms
//   - [io] - JSON save/load and TOML transform files
//   - [render] - node-link diagrams via Graphviz
//   - [pipeline] - cached rendering shared by the CLI and the server
//   - [cache] - artifact caches (file, Redis, none)
//   - [store] - graph snapshots (file, MongoDB)
//   - [errors] - coded errors for the CLI and HTTP surfaces
//   - [observability] - optional cache and render hooks
//   - [buildinfo] - version information set at build time
//
// # Data Flow
//
//	skeleton.json ──io.ImportJSON──▶ sparse.Graph ──pipeline.Runner──▶ SVG / DOT
//	                                      │
//	                     TransformFrame, RemoveVertex, store.Put ...
//
// # Quick Start
//
//	g := sparse.New()
//	a := g.AddVertex(sparse.Vertex{Point: geom.Point{X: 0, Y: 0, Z: 0}})
//	b := g.AddVertex(sparse.Vertex{Point: geom.Point{X: 1, Y: 0, Z: 0}})
//	if _, err := g.AddEdge(sparse.Edge{Start: a, End: b}); err != nil {
//	    return err
//	}
//	g.TransformFrame(geom.Translation(geom.Point{Z: 2}))
//	return io.ExportJSON(g, "skeleton.json")
//
// [sparse]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/sparse
// [geom]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/geom
// [io]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/skelgraph/pkg/buildinfo
package pkg

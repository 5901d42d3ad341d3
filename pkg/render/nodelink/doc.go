// Package nodelink renders skeleton graphs as node-link diagrams.
//
// # Overview
//
// Every vertex becomes a Graphviz node pinned at its position projected onto
// one of the coordinate planes; every edge becomes an undirected line. The
// neato engine honours the pinned positions, so the drawing keeps the
// skeleton's geometry.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Plane: nodelink.PlaneXY})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Plane: which two coordinates become the drawing's x and y
//   - Scale: drawing inches per world unit (default 1)
//   - Detailed: label vertices with coordinates and clearance distance
//
// # DOT Format
//
// [ToDOT] output is plain Graphviz source. It can be saved and processed with
// external tools (neato -n2 keeps the pinned positions).
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz,
// so no system install is required.
package nodelink

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// Plane selects the two coordinates used for the drawing.
type Plane string

// Projection planes.
const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

// Planes lists every supported projection plane.
var Planes = []string{string(PlaneXY), string(PlaneXZ), string(PlaneYZ)}

// Options configures node-link diagram rendering.
type Options struct {
	// Plane is the projection plane. Empty means PlaneXY.
	Plane Plane
	// Scale is the number of drawing inches per world unit. Zero means 1.
	Scale float64
	// Detailed adds coordinates and clearance distance to vertex labels.
	// When false, only the vertex id is shown.
	Detailed bool
}

// Project maps p onto the plane, returning drawing coordinates.
func (pl Plane) Project(p geom.Point) (float64, float64) {
	switch pl {
	case PlaneXZ:
		return p.X, p.Z
	case PlaneYZ:
		return p.Y, p.Z
	default:
		return p.X, p.Y
	}
}

// ToDOT converts a skeleton graph to Graphviz DOT source.
// Vertices and edges are emitted in ascending id order. Edge endpoints are
// taken from the vertex store, not from the edges' cached points.
func ToDOT(g *sparse.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, id := range g.VertexIDs() {
		v, err := g.Vertex(id)
		if err != nil {
			continue
		}
		x, y := opts.Plane.Project(v.Point)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(v, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x*scale), fmtFloat(y*scale)),
		}
		if g.Degree(id) == 0 {
			attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range g.EdgeIDs() {
		e, err := g.Edge(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [id=\"e%d\"];\n", e.Start, e.End, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v *sparse.Vertex, detailed bool) string {
	id := strconv.FormatInt(int64(v.ID), 10)
	if !detailed {
		return id
	}
	parts := []string{
		id,
		fmt.Sprintf("(%s, %s, %s)", fmtFloat(v.Point.X), fmtFloat(v.Point.Y), fmtFloat(v.Point.Z)),
	}
	if v.Distance != 0 {
		parts = append(parts, "d="+fmtFloat(v.Distance))
	}
	return strings.Join(parts, "\n")
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG with the neato engine, which keeps
// the pinned vertex positions produced by [ToDOT].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root <svg> tag with one whose
// viewBox starts at the origin and whose width and height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

package sparse

import "github.com/matzehuels/skelgraph/pkg/geom"

// VertexID is a process-local handle identifying a vertex within one Graph.
type VertexID int64

// EdgeID is a process-local handle identifying an edge within one Graph.
type EdgeID int64

// Vertex is a labeled skeleton point.
//
// Edges lists the ids of incident edges in the order they were attached.
// Vertices never hold references to edges, only ids resolved through the
// owning Graph.
type Vertex struct {
	ID    VertexID   // Assigned by AddVertex; caller-supplied on the serialized path
	Point geom.Point // Position in the graph's current frame
	Edges []EdgeID   // Incident edge ids, attachment order

	// Distance is the clearance from the skeleton point to the nearest
	// obstacle surface. Zero when unknown.
	Distance float64
	// SubgraphID labels the connected component the vertex was extracted in.
	SubgraphID int
}

// Edge is a line segment between two vertices.
//
// StartPoint, EndPoint, StartDistance and EndDistance are snapshots copied
// from the endpoint vertices when the edge is added. They are refreshed by
// Graph.TransformFrame and by nothing else: editing a vertex's Point later
// leaves the edge cache stale.
type Edge struct {
	ID    EdgeID   // Assigned by AddEdge; caller-supplied on the serialized path
	Start VertexID // First endpoint
	End   VertexID // Second endpoint

	StartPoint    geom.Point
	EndPoint      geom.Point
	StartDistance float64
	EndDistance   float64
}

// Other returns the endpoint opposite to v. For a self-loop it returns v.
// The result is meaningless if v is not an endpoint of e.
func (e Edge) Other(v VertexID) VertexID {
	if e.Start == v {
		return e.End
	}
	return e.Start
}

// Touches reports whether v is one of the edge's endpoints.
func (e Edge) Touches(v VertexID) bool { return e.Start == v || e.End == v }

// Length returns the distance between the cached endpoint points.
func (e Edge) Length() float64 { return e.StartPoint.Dist(e.EndPoint) }

// Transformer maps points from one coordinate frame into another.
// [geom.Transformation] is the usual implementation.
type Transformer interface {
	Apply(p geom.Point) geom.Point
}

// TransformFunc adapts an ordinary function to the Transformer interface.
type TransformFunc func(geom.Point) geom.Point

// Apply calls f(p).
func (f TransformFunc) Apply(p geom.Point) geom.Point { return f(p) }

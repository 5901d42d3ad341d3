// Package geom provides the 3-D point and rigid-transform types used by
// skeleton graphs.
//
// A [Transformation] is a unit-quaternion rotation followed by a translation.
// Transforms compose with [Transformation.Compose], where the receiver is
// applied last:
//
//	T := geom.Translation(geom.Point{X: 1}).Compose(geom.Rotation(q))
//	p2 := T.Apply(p) // rotate, then shift along X
//
// Transformation satisfies the sparse.Transformer interface, so it can be
// passed directly to Graph.TransformFrame.
package geom

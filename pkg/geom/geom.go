package geom

import "math"

// Point is a position in 3-D space.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p multiplied component-wise by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Norm() }

// ApproxEqual reports whether every component of p is within eps of q.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps && math.Abs(p.Z-q.Z) <= eps
}

// Array returns the point as an [x, y, z] array, the layout used on the wire.
func (p Point) Array() [3]float64 { return [3]float64{p.X, p.Y, p.Z} }

// FromArray builds a Point from an [x, y, z] array.
func FromArray(a [3]float64) Point { return Point{a[0], a[1], a[2]} }

// Quaternion is a rotation in W + Xi + Yj + Zk form.
// Only unit quaternions describe rotations; use Normalize after building one
// from user input.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityRotation is the quaternion that leaves every point unchanged.
var IdentityRotation = Quaternion{W: 1}

// AxisAngle returns the rotation of rad radians about axis.
// A zero axis yields the identity rotation.
func AxisAngle(axis Point, rad float64) Quaternion {
	n := axis.Norm()
	if n == 0 {
		return IdentityRotation
	}
	s := math.Sin(rad/2) / n
	return Quaternion{W: math.Cos(rad / 2), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the Hamilton product q*r, the rotation r followed by q.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conj returns the conjugate of q, which is its inverse for unit quaternions.
func (q Quaternion) Conj() Quaternion { return Quaternion{q.W, -q.X, -q.Y, -q.Z} }

// Normalize returns q scaled to unit length. The zero quaternion
// normalizes to the identity rotation.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityRotation
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Rotate applies the rotation q to p.
func (q Quaternion) Rotate(p Point) Point {
	// v' = v + 2w(u×v) + 2u×(u×v), u = (x, y, z)
	u := Point{q.X, q.Y, q.Z}
	t := cross(u, p).Scale(2)
	return p.Add(t.Scale(q.W)).Add(cross(u, t))
}

func cross(a, b Point) Point {
	return Point{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

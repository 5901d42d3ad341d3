package geom

// Transformation is a rigid-body transform: a rotation followed by a
// translation. The zero value is not a valid transform because its rotation
// quaternion is zero; use [Identity] or [NewTransformation].
type Transformation struct {
	Rotation    Quaternion
	Translation Point
}

// Identity returns the transform that maps every point to itself.
func Identity() Transformation {
	return Transformation{Rotation: IdentityRotation}
}

// NewTransformation returns the transform that rotates by rot and then
// translates by trans. rot is normalized.
func NewTransformation(rot Quaternion, trans Point) Transformation {
	return Transformation{Rotation: rot.Normalize(), Translation: trans}
}

// Translation returns a pure translation by p.
func Translation(p Point) Transformation {
	return Transformation{Rotation: IdentityRotation, Translation: p}
}

// Rotation returns a pure rotation by q about the origin.
func Rotation(q Quaternion) Transformation {
	return Transformation{Rotation: q.Normalize()}
}

// Apply maps p into the target frame.
func (t Transformation) Apply(p Point) Point {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// Compose returns t∘inner: the transform that applies inner first and t
// second, so t.Compose(inner).Apply(p) == t.Apply(inner.Apply(p)).
func (t Transformation) Compose(inner Transformation) Transformation {
	return Transformation{
		Rotation:    t.Rotation.Mul(inner.Rotation).Normalize(),
		Translation: t.Rotation.Rotate(inner.Translation).Add(t.Translation),
	}
}

// Inverse returns the transform that undoes t.
func (t Transformation) Inverse() Transformation {
	inv := t.Rotation.Conj()
	return Transformation{
		Rotation:    inv,
		Translation: inv.Rotate(t.Translation).Scale(-1),
	}
}

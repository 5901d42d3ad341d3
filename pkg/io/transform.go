package io

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skelgraph/pkg/geom"
)

// ErrInvalidTransform is returned by [ReadTransform] when a step mixes a
// quaternion with an axis-angle rotation, or gives an angle without an axis.
var ErrInvalidTransform = errors.New("invalid transform step")

type transformFile struct {
	Steps []transformStep `toml:"step"`
}

type transformStep struct {
	Translation *[3]float64 `toml:"translation"`
	Rotation    *[4]float64 `toml:"rotation"` // w, x, y, z
	Axis        *[3]float64 `toml:"axis"`
	AngleDeg    *float64    `toml:"angle_deg"`
}

// ReadTransform decodes a rigid transform from TOML.
//
// The document is a list of steps, applied in file order:
//
//	[[step]]
//	axis = [0.0, 0.0, 1.0]
//	angle_deg = 90.0
//
//	[[step]]
//	translation = [1.0, 0.0, 0.0]
//
// Within one step the rotation (either rotation = [w, x, y, z] or
// axis + angle_deg) is applied before the translation. A document without
// steps yields the identity.
func ReadTransform(r io.Reader) (geom.Transformation, error) {
	var f transformFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return geom.Transformation{}, fmt.Errorf("decode: %w", err)
	}

	T := geom.Identity()
	for i, s := range f.Steps {
		step, err := s.transformation()
		if err != nil {
			return geom.Transformation{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		T = step.Compose(T)
	}
	return T, nil
}

// LoadTransform reads a TOML transform file at path.
func LoadTransform(path string) (geom.Transformation, error) {
	f, err := os.Open(path)
	if err != nil {
		return geom.Transformation{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	T, err := ReadTransform(f)
	if err != nil {
		return geom.Transformation{}, fmt.Errorf("%s: %w", path, err)
	}
	return T, nil
}

func (s transformStep) transformation() (geom.Transformation, error) {
	rot := geom.IdentityRotation
	switch {
	case s.Rotation != nil && (s.Axis != nil || s.AngleDeg != nil):
		return geom.Transformation{}, fmt.Errorf("rotation and axis/angle_deg both set: %w", ErrInvalidTransform)
	case s.Rotation != nil:
		q := *s.Rotation
		rot = geom.Quaternion{W: q[0], X: q[1], Y: q[2], Z: q[3]}
	case s.AngleDeg != nil && s.Axis == nil:
		return geom.Transformation{}, fmt.Errorf("angle_deg without axis: %w", ErrInvalidTransform)
	case s.Axis != nil:
		var deg float64
		if s.AngleDeg != nil {
			deg = *s.AngleDeg
		}
		rot = geom.AxisAngle(geom.FromArray(*s.Axis), deg*math.Pi/180)
	}

	var trans geom.Point
	if s.Translation != nil {
		trans = geom.FromArray(*s.Translation)
	}
	return geom.NewTransformation(rot, trans), nil
}

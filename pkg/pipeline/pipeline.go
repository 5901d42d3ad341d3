// Package pipeline turns skeleton graphs into rendered artifacts.
//
// It centralises the render step used by the CLI and the HTTP server, so both
// apply the same defaults, validation and caching.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Render(ctx, g, pipeline.Options{Format: pipeline.FormatSVG})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("skeleton.svg", res.Data, 0644)
//
// Artifacts are cached under a key derived from the graph's JSON encoding
// and the options that affect the output, so editing the graph or changing
// the plane produces a fresh render.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/skelgraph/pkg/cache"
	"github.com/matzehuels/skelgraph/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// DefaultPlane is the projection plane used when none is given.
const DefaultPlane = nodelink.PlaneXY

// Options configures a render.
type Options struct {
	Format   string  // "dot" or "svg"
	Plane    string  // "xy", "xz" or "yz"
	Detailed bool    // label vertices with coordinates and distance
	Scale    float64 // drawing inches per world unit; zero means 1
	Refresh  bool    // skip the cache lookup but still store the result
}

// ValidateAndSetDefaults fills in empty fields and rejects unknown values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Plane == "" {
		o.Plane = string(DefaultPlane)
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidatePlane(o.Plane); err != nil {
		return err
	}
	if o.Scale < 0 {
		return fmt.Errorf("invalid scale: %g (must be positive)", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	return nil
}

// ArtifactKeyOpts returns the options that change the artifact bytes.
func (o Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   o.Format,
		Plane:    o.Plane,
		Detailed: o.Detailed,
		Scale:    o.Scale,
	}
}

func (o Options) nodelinkOptions() nodelink.Options {
	return nodelink.Options{
		Plane:    nodelink.Plane(o.Plane),
		Scale:    o.Scale,
		Detailed: o.Detailed,
	}
}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be 'dot' or 'svg')", format)
	}
	return nil
}

// ValidatePlane checks that plane is one of the projection planes.
func ValidatePlane(plane string) error {
	for _, p := range nodelink.Planes {
		if plane == p {
			return nil
		}
	}
	return fmt.Errorf("invalid plane: %q (must be one of %s)", plane, strings.Join(nodelink.Planes, ", "))
}

// FormatFromPath infers the output format from a file extension.
// An unknown or missing extension yields def.
func FormatFromPath(path, def string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ValidFormats[ext] {
		return ext
	}
	return def
}

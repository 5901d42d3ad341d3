package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skelgraph/pkg/cache"
	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/observability"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidatePlane(t *testing.T) {
	for _, p := range []string{"xy", "xz", "yz"} {
		if err := ValidatePlane(p); err != nil {
			t.Errorf("ValidatePlane(%q) = %v", p, err)
		}
	}
	for _, p := range []string{"", "zx", "XY"} {
		if err := ValidatePlane(p); err == nil {
			t.Errorf("ValidatePlane(%q) should fail", p)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Format != FormatSVG {
		t.Errorf("Format = %q, want %q", opts.Format, FormatSVG)
	}
	if opts.Plane != "xy" {
		t.Errorf("Plane = %q, want xy", opts.Plane)
	}
	if opts.Scale != 1 {
		t.Errorf("Scale = %g, want 1", opts.Scale)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative scale should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.svg", "svg"},
		{"out.DOT", "dot"},
		{"out.png", "svg"},
		{"out", "svg"},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path, FormatSVG); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set++
}

type failingCache struct{ cache.NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrBackend
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrBackend
}

func segment() *sparse.Graph {
	g := sparse.New()
	a := g.AddVertex(sparse.Vertex{Point: geom.Point{}})
	b := g.AddVertex(sparse.Vertex{Point: geom.Point{X: 1, Y: 1}})
	g.AddEdge(sparse.Edge{Start: a, End: b})
	return g
}

func TestRunnerCaches(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.New(io.Discard))
	ctx := context.Background()
	g := segment()
	opts := Options{Format: FormatDOT}

	first, err := r.Render(ctx, g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first.CacheHit {
		t.Error("first render should miss")
	}
	if !strings.Contains(string(first.Data), "v0 -- v1") {
		t.Errorf("unexpected DOT:\n%s", first.Data)
	}

	second, err := r.Render(ctx, g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !second.CacheHit || string(second.Data) != string(first.Data) {
		t.Errorf("second render hit=%v, data equal=%v", second.CacheHit, string(second.Data) == string(first.Data))
	}

	// Editing the graph changes the key.
	g.AddVertex(sparse.Vertex{Point: geom.Point{Z: 2}})
	third, err := r.Render(ctx, g, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if third.CacheHit || third.GraphHash == first.GraphHash {
		t.Error("render after edit should miss with a new hash")
	}

	// Refresh skips the lookup.
	fourth, err := r.Render(ctx, g, Options{Format: FormatDOT, Refresh: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fourth.CacheHit {
		t.Error("refresh render should not report a hit")
	}

	if hooks.hits != 1 || hooks.misses != 2 || hooks.set != 3 {
		t.Errorf("hooks hits/misses/set = %d/%d/%d, want 1/2/3", hooks.hits, hooks.misses, hooks.set)
	}
}

func TestRunnerKeysOnScale(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.New(io.Discard))
	ctx := context.Background()
	g := sparse.New()
	g.AddVertex(sparse.Vertex{Point: geom.Point{X: 3, Y: 4}})

	tests := []struct {
		name    string
		scale   float64
		wantHit bool
		wantPos string
	}{
		{"Unit", 1, false, `pos="3,4!"`},
		{"Scaled", 10, false, `pos="30,40!"`},
		{"ZeroIsUnit", 0, true, `pos="3,4!"`},
		{"ScaledAgain", 10, true, `pos="30,40!"`},
	}

	for _, tt := range tests {
		res, err := r.Render(ctx, g, Options{Format: FormatDOT, Scale: tt.scale})
		if err != nil {
			t.Fatalf("%s: Render: %v", tt.name, err)
		}
		if res.CacheHit != tt.wantHit {
			t.Errorf("%s: hit = %v, want %v", tt.name, res.CacheHit, tt.wantHit)
		}
		if !strings.Contains(string(res.Data), tt.wantPos) {
			t.Errorf("%s: DOT missing %s:\n%s", tt.name, tt.wantPos, res.Data)
		}
	}
}

func TestRunnerIgnoresCacheFailures(t *testing.T) {
	r := NewRunner(&failingCache{}, nil, log.New(io.Discard))
	res, err := r.Render(context.Background(), segment(), Options{Format: FormatDOT})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.CacheHit || len(res.Data) == 0 {
		t.Errorf("unexpected result: hit=%v len=%d", res.CacheHit, len(res.Data))
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), segment(), Options{Format: "png"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, cache.ErrBackend) {
		t.Errorf("unexpected backend error: %v", err)
	}
}

func TestRenderSVG(t *testing.T) {
	data, err := Render(context.Background(), segment(), Options{Format: FormatSVG, Plane: "xy"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("not an SVG: %.200s", data)
	}
}

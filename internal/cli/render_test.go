package cli

import (
	"testing"
)

func TestValidateRenderOpts(t *testing.T) {
	tests := []struct {
		name       string
		opts       renderOpts
		wantFormat string
		wantErr    bool
	}{
		{"defaults to svg", renderOpts{plane: "xy", scale: 1}, "svg", false},
		{"format from extension", renderOpts{output: "out.dot", plane: "xy", scale: 1}, "dot", false},
		{"explicit format wins", renderOpts{output: "out.dot", format: "svg", plane: "xz", scale: 1}, "svg", false},
		{"unknown extension", renderOpts{output: "out.png", plane: "yz", scale: 1}, "svg", false},
		{"bad format", renderOpts{format: "pdf", plane: "xy", scale: 1}, "", true},
		{"bad plane", renderOpts{plane: "zz", scale: 1}, "", true},
		{"bad scale", renderOpts{plane: "xy", scale: 0}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := validateRenderOpts(&opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateRenderOpts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && opts.format != tt.wantFormat {
				t.Errorf("format = %q, want %q", opts.format, tt.wantFormat)
			}
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input, format, want string
	}{
		{"graph.json", "svg", "graph.svg"},
		{"dir.v2/graph", "dot", "dir.v2/graph.dot"},
		{"a/b/skeleton.json", "dot", "a/b/skeleton.dot"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.input, tt.format); got != tt.want {
			t.Errorf("defaultOutput(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

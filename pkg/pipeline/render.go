package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/skelgraph/pkg/render/nodelink"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// Render produces the artifact for g without consulting any cache.
// opts must already be validated.
func Render(ctx context.Context, g *sparse.Graph, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(g, opts.nodelinkOptions())
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

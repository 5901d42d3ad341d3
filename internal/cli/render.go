package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/pipeline"
	"github.com/matzehuels/skelgraph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file; its extension picks the format
	format    string  // explicit format, overrides the extension
	plane     string  // projection plane: xy, xz or yz
	detailed  bool    // label vertices with coordinates and distance
	scale     float64 // drawing inches per world unit
	noCache   bool    // bypass the artifact cache
	refresh   bool    // re-render and overwrite the cached artifact
	redisAddr string  // use a Redis cache at this address
}

// renderCommand creates the render command for node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{plane: string(pipeline.DefaultPlane), scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph as a node-link diagram (SVG or DOT)",
		Long: `Render a graph as a node-link diagram.

Vertices are pinned at their positions projected onto --plane. The format is
taken from --format, else from the --output extension (.svg or .dot), else
SVG. Rendered artifacts are cached by graph contents and options.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderOpts(&opts); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().StringVar(&opts.plane, "plane", opts.plane, "projection plane: xy, xz, yz")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with coordinates and distance")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "drawing inches per world unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache (env "+envRedisAddr+")")

	return cmd
}

// validateRenderOpts resolves the format and checks the choices.
func validateRenderOpts(opts *renderOpts) error {
	if opts.format == "" {
		opts.format = pipeline.FormatFromPath(opts.output, pipeline.FormatSVG)
	}
	if err := serrors.ValidateChoice("format", opts.format, pipeline.FormatSVG, pipeline.FormatDOT); err != nil {
		return err
	}
	if err := serrors.ValidateChoice("plane", opts.plane, nodelink.Planes...); err != nil {
		return err
	}
	if opts.scale <= 0 {
		return serrors.New(serrors.ErrCodeInvalidInput, "scale must be positive, got %g", opts.scale)
	}
	return nil
}

// defaultOutput derives the output path from the input by swapping the
// extension for the format.
func defaultOutput(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()

	g, err := loadGraph(c.Logger, input)
	if err != nil {
		return err
	}

	ch, keyer, err := c.newCache(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return err
	}
	defer ch.Close()
	runner := pipeline.NewRunner(ch, keyer, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()
	res, err := runner.Render(ctx, g, pipeline.Options{
		Format:   opts.format,
		Plane:    opts.plane,
		Detailed: opts.detailed,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	out := opts.output
	if out == "" {
		out = defaultOutput(input, opts.format)
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %s", strings.ToUpper(opts.format))
	printStats(g.VertexCount(), g.EdgeCount(), res.CacheHit)
	printFile(out)
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// transformCommand creates the transform command, which moves a graph into
// another frame with a rigid transform read from TOML.
func (c *CLI) transformCommand() *cobra.Command {
	var config, output string

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Apply a rigid transform to every vertex and cached edge point",
		Long: `Apply a rigid transform to every vertex and cached edge point.

The transform is a TOML file of [[step]] tables applied in order, e.g.:

  [[step]]
  axis = [0.0, 0.0, 1.0]
  angle_deg = 90.0

  [[step]]
  translation = [1.0, 0.0, 0.0]

Without --output the input file is overwritten.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			T, err := skelio.LoadTransform(config)
			if err != nil {
				return err
			}
			g, err := loadGraph(c.Logger, args[0])
			if err != nil {
				return err
			}

			g.TransformFrame(T)
			c.Logger.Debug("transformed", "rotation", T.Rotation, "translation", T.Translation)

			printSuccess("Transformed %d vertices, %d edges", g.VertexCount(), g.EdgeCount())
			return saveGraph(g, outputPath(output, args[0]))
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML transform file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.MarkFlagRequired("config")

	return cmd
}

// pruneCommand creates the prune command, which removes vertices (with
// their incident edges) and edges by id.
func (c *CLI) pruneCommand() *cobra.Command {
	var (
		vertices []string
		edges    []string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "prune [file]",
		Short: "Remove vertices and edges by id",
		Long: `Remove vertices and edges by id.

Removing a vertex also removes every edge incident to it. Ids that do not
exist are reported and skipped. Without --output the input file is
overwritten.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			vids, err := parseIDs("vertex", vertices)
			if err != nil {
				return err
			}
			eids, err := parseIDs("edge", edges)
			if err != nil {
				return err
			}

			g, err := loadGraph(c.Logger, args[0])
			if err != nil {
				return err
			}
			res := prune(g, vids, eids)
			for _, id := range res.missingVertices {
				printWarning("Vertex %d not found", id)
			}
			for _, id := range res.missingEdges {
				printWarning("Edge %d not found", id)
			}

			printSuccess("Removed %d vertices, %d edges", res.vertices, res.edges)
			return saveGraph(g, outputPath(output, args[0]))
		},
	}

	cmd.Flags().StringSliceVar(&vertices, "vertex", nil, "vertex id to remove (repeatable, comma-separated)")
	cmd.Flags().StringSliceVar(&edges, "edge", nil, "edge id to remove (repeatable, comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

type pruneResult struct {
	vertices        int
	edges           int // includes edges removed with their vertices
	missingVertices []int64
	missingEdges    []int64
}

// prune removes edges first, then vertices, counting every edge that
// disappears.
func prune(g *sparse.Graph, vertices, edges []int64) pruneResult {
	var res pruneResult
	before := g.EdgeCount()
	for _, id := range edges {
		if !g.HasEdge(sparse.EdgeID(id)) {
			res.missingEdges = append(res.missingEdges, id)
			continue
		}
		g.RemoveEdge(sparse.EdgeID(id))
	}
	for _, id := range vertices {
		if !g.HasVertex(sparse.VertexID(id)) {
			res.missingVertices = append(res.missingVertices, id)
			continue
		}
		g.RemoveVertex(sparse.VertexID(id))
		res.vertices++
	}
	res.edges = before - g.EdgeCount()
	return res
}

func parseIDs(kind string, raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := serrors.ParseEntityID(kind, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

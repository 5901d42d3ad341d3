package cli

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// graphSummary holds the figures printed by the info command.
type graphSummary struct {
	Vertices     int
	Edges        int
	NextVertexID sparse.VertexID
	NextEdgeID   sparse.EdgeID
	Subgraphs    int
	TotalLength  float64
	Min, Max     geom.Point
	Degrees      map[int]int // degree -> vertex count
	ValidateErr  error
}

func summarize(g *sparse.Graph) graphSummary {
	s := graphSummary{
		Vertices:     g.VertexCount(),
		Edges:        g.EdgeCount(),
		NextVertexID: g.NextVertexID(),
		NextEdgeID:   g.NextEdgeID(),
		Degrees:      make(map[int]int),
		ValidateErr:  g.Validate(),
	}

	subgraphs := make(map[int]struct{})
	s.Min = geom.Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	s.Max = geom.Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		s.Degrees[len(v.Edges)]++
		subgraphs[v.SubgraphID] = struct{}{}
		p := v.Point
		s.Min = geom.Point{X: math.Min(s.Min.X, p.X), Y: math.Min(s.Min.Y, p.Y), Z: math.Min(s.Min.Z, p.Z)}
		s.Max = geom.Point{X: math.Max(s.Max.X, p.X), Y: math.Max(s.Max.Y, p.Y), Z: math.Max(s.Max.Z, p.Z)}
	}
	if s.Vertices == 0 {
		s.Min, s.Max = geom.Point{}, geom.Point{}
	}
	s.Subgraphs = len(subgraphs)

	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		s.TotalLength += e.Length()
	}
	return s
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show counts, id counters, degree histogram and validity of a graph",
		Long: `Show counts, id counters, degree histogram and validity of a graph.

The file is loaded without validation so that damaged graphs can be examined.
Info exits with an error when the adjacency check fails.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphUnchecked(c.Logger, args[0])
			if err != nil {
				return err
			}
			s := summarize(g)
			printSummary(args[0], s)
			if s.ValidateErr != nil {
				return serrors.Wrap(serrors.ErrCodeCorruptGraph, s.ValidateErr, "%s is inconsistent: %v", args[0], s.ValidateErr)
			}
			return nil
		},
	}
}

func printSummary(path string, s graphSummary) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("Vertices", strconv.Itoa(s.Vertices))
	printKeyValue("Edges", strconv.Itoa(s.Edges))
	printKeyValue("Next ids", fmt.Sprintf("vertex %d, edge %d", s.NextVertexID, s.NextEdgeID))
	printKeyValue("Subgraphs", strconv.Itoa(s.Subgraphs))
	printKeyValue("Length", strconv.FormatFloat(s.TotalLength, 'f', 3, 64))
	printKeyValue("Bounds", fmt.Sprintf("%s .. %s", fmtPoint(s.Min), fmtPoint(s.Max)))
	printNewline()

	if len(s.Degrees) > 0 {
		degrees := make([]int, 0, len(s.Degrees))
		for d := range s.Degrees {
			degrees = append(degrees, d)
		}
		slices.Sort(degrees)

		rows := make([][]string, 0, len(degrees))
		for _, d := range degrees {
			rows = append(rows, []string{strconv.Itoa(d), strconv.Itoa(s.Degrees[d])})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Degree", "Vertices").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
				}
				return StyleNumber.Padding(0, 1)
			})
		fmt.Println(t.Render())
	}

	printValidity(s.ValidateErr)
}

func fmtPoint(p geom.Point) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
	return "(" + f(p.X) + ", " + f(p.Y) + ", " + f(p.Z) + ")"
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// loadGraph imports and validates a graph file and logs its size.
func loadGraph(logger *log.Logger, path string) (*sparse.Graph, error) {
	return loadWith(logger, path, skelio.ImportJSON)
}

// loadGraphUnchecked is loadGraph without validation, for diagnostics.
func loadGraphUnchecked(logger *log.Logger, path string) (*sparse.Graph, error) {
	return loadWith(logger, path, skelio.ImportJSONUnchecked)
}

func loadWith(logger *log.Logger, path string, load func(string) (*sparse.Graph, error)) (*sparse.Graph, error) {
	prog := newProgress(logger)
	g, err := load(path)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s: %d vertices, %d edges", path, g.VertexCount(), g.EdgeCount()))
	return g, nil
}

// saveGraph exports g to path and prints the output line.
func saveGraph(g *sparse.Graph, path string) error {
	if err := skelio.ExportJSON(g, path); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// outputPath returns output, or input when no output was given.
func outputPath(output, input string) string {
	if output == "" {
		return input
	}
	return output
}

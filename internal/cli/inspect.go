package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command, an interactive vertex browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse vertices and their edges interactively",
		Long: `Browse vertices and their edges interactively.

Vertices deleted in the browser take their incident edges with them. When the
browser exits after a deletion, the graph is written to --output, or back to
the input file if no output is given.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(c.Logger, args[0])
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewInspectModel(g), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			m, ok := final.(InspectModel)
			if !ok || !m.Dirty {
				return nil
			}

			printSuccess("%d vertices, %d edges remain", g.VertexCount(), g.EdgeCount())
			return saveGraph(g, outputPath(output, args[0]))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for edits (default: overwrite input)")
	return cmd
}

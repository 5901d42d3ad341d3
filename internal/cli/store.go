package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/store"
)

// storeCommand creates the snapshot store command.
func (c *CLI) storeCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and restore graph snapshots",
		Long: `Save and restore graph snapshots.

Snapshots live in files under the data directory ($XDG_DATA_HOME/skelgraph,
default ~/.local/share/skelgraph), or in MongoDB when --mongo or
` + envMongoURI + ` is set.`,
	}
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo", "", "MongoDB URI (env "+envMongoURI+")")

	open := func(cmd *cobra.Command) (store.Store, error) {
		return c.newStore(cmd.Context(), mongoURI)
	}

	cmd.AddCommand(c.storePushCommand(open))
	cmd.AddCommand(c.storePullCommand(open))
	cmd.AddCommand(c.storeListCommand(open))
	cmd.AddCommand(c.storeRmCommand(open))

	return cmd
}

type storeOpener func(cmd *cobra.Command) (store.Store, error)

func (c *CLI) storePushCommand(open storeOpener) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:               "push [file]",
		Short:             "Save a graph file as a new snapshot",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(c.Logger, args[0])
			if err != nil {
				return err
			}
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if name == "" {
				name = args[0]
			}
			snap, err := st.Put(cmd.Context(), name, g)
			if err != nil {
				return err
			}
			printSuccess("Saved snapshot %s", snap.ID)
			printDetail("%d vertices, %d edges", snap.Vertices, snap.Edges)
			printNextStep("Restore with", appName+" store pull "+snap.ID+" -o "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "snapshot label (default: file name)")
	return cmd
}

func (c *CLI) storePullCommand(open storeOpener) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [id]",
		Short: "Write a snapshot to a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + ".json"
			}
			if err := skelio.ExportJSON(g, output); err != nil {
				return err
			}
			printSuccess("Restored %d vertices, %d edges", g.VertexCount(), g.EdgeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.json)")
	return cmd
}

func (c *CLI) storeListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			snaps, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots")
				return nil
			}
			fmt.Println(snapshotTable(snaps))
			return nil
		},
	}
}

func snapshotTable(snaps []store.Snapshot) string {
	rows := make([][]string, len(snaps))
	for i, s := range snaps {
		rows[i] = []string{
			s.ID,
			s.Name,
			strconv.Itoa(s.Vertices),
			strconv.Itoa(s.Edges),
			s.CreatedAt.Local().Format(time.DateTime),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Vertices", "Edges", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2 || col == 3:
				return cellStyle.Foreground(colorAccent)
			case col == 4:
				return cellStyle.Foreground(colorDim)
			default:
				return cellStyle
			}
		}).
		Render()
}

func (c *CLI) storeRmCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id...]",
		Short: "Delete snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted snapshot %s", id)
			}
			return nil
		},
	}
}

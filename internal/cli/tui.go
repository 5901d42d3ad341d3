package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// InspectModel - Interactive vertex browser
// =============================================================================

// InspectModel is the bubbletea model for browsing and pruning a graph.
// It edits the graph in place; Dirty reports whether anything was removed.
type InspectModel struct {
	Graph   *sparse.Graph
	IDs     []sparse.VertexID
	Cursor  int
	Height  int
	Offset  int
	Detail  bool
	Dirty   bool
	Message string
}

// NewInspectModel creates a browser over g's vertices in ascending id order.
func NewInspectModel(g *sparse.Graph) InspectModel {
	return InspectModel{
		Graph:  g,
		IDs:    g.VertexIDs(),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Message = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.IDs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		case "d", "delete":
			m = m.deleteSelected()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// deleteSelected removes the vertex under the cursor with its edges.
func (m InspectModel) deleteSelected() InspectModel {
	if len(m.IDs) == 0 {
		return m
	}
	id := m.IDs[m.Cursor]
	before := m.Graph.EdgeCount()
	m.Graph.RemoveVertex(id)
	edges := before - m.Graph.EdgeCount()
	m.IDs = m.Graph.VertexIDs()
	m.Dirty = true
	m.Message = fmt.Sprintf("removed vertex %d and %d edges", id, edges)

	if m.Cursor >= len(m.IDs) && m.Cursor > 0 {
		m.Cursor = len(m.IDs) - 1
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
	return m
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Skeleton Vertices"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edges  d delete  q quit"))
	b.WriteString("\n\n")

	if len(m.IDs) == 0 {
		b.WriteString(listDimStyle.Render("  graph is empty"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.IDs))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		v, err := m.Graph.Vertex(m.IDs[i])
		if err != nil {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.FormatInt(int64(v.ID), 10),
			fmtPoint(v.Point),
			strconv.Itoa(len(v.Edges)),
			strconv.FormatFloat(v.Distance, 'g', 4, 64),
			strconv.Itoa(v.SubgraphID),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Point", "Degree", "Distance", "Subgraph").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				return base.Foreground(colorAccent).Bold(true)
			}
			if idx < len(m.IDs) && m.Graph.Degree(m.IDs[idx]) == 0 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorText)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Detail {
		b.WriteString(m.edgeDetail(m.IDs[m.Cursor]))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.IDs))
	if m.Dirty {
		status += "  modified"
	}
	b.WriteString(listDimStyle.Render(status))
	if m.Message != "" {
		b.WriteString("  " + StyleWarning.Render(m.Message))
	}
	return b.String()
}

// edgeDetail lists the edges incident to id in adjacency order.
func (m InspectModel) edgeDetail(id sparse.VertexID) string {
	v, err := m.Graph.Vertex(id)
	if err != nil {
		return ""
	}
	if len(v.Edges) == 0 {
		return listDetailStyle.Render(listDimStyle.Render("no edges"))
	}

	lines := make([]string, 0, len(v.Edges))
	for _, eid := range v.Edges {
		e, err := m.Graph.Edge(eid)
		if err != nil {
			lines = append(lines, StyleWarning.Render(fmt.Sprintf("edge %d missing", eid)))
			continue
		}
		lines = append(lines, fmt.Sprintf("edge %-6d → vertex %-6d length %s",
			eid, e.Other(id), strconv.FormatFloat(e.Length(), 'f', 3, 64)))
	}
	return listDetailStyle.Render(strings.Join(lines, "\n"))
}

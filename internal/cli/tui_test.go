package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/skelgraph/pkg/geom"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

func pathGraph(t *testing.T, n int) *sparse.Graph {
	t.Helper()
	g := sparse.New()
	for i := 0; i < n; i++ {
		g.AddVertex(sparse.Vertex{Point: geom.Point{X: float64(i)}})
	}
	for i := 0; i+1 < n; i++ {
		if _, err := g.AddEdge(sparse.Edge{Start: sparse.VertexID(i), End: sparse.VertexID(i + 1)}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func press(m InspectModel, keys ...string) InspectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(InspectModel)
	}
	return m
}

func TestInspectNavigation(t *testing.T) {
	m := NewInspectModel(pathGraph(t, 4))
	m.Height = 2

	m = press(m, "down", "down", "down", "down")
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3 (clamped)", m.Cursor)
	}
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}

	m = press(m, "up", "up", "up", "k")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("Cursor/Offset = %d/%d, want 0/0", m.Cursor, m.Offset)
	}
}

func TestInspectDeleteCascades(t *testing.T) {
	g := pathGraph(t, 3)
	m := NewInspectModel(g)

	m = press(m, "j", "d")
	if !m.Dirty {
		t.Error("model should be dirty after delete")
	}
	if g.HasVertex(1) || g.EdgeCount() != 0 {
		t.Errorf("vertex 1 and its edges should be gone: vertices %v, edges %d", g.VertexIDs(), g.EdgeCount())
	}
	if len(m.IDs) != 2 || m.IDs[0] != 0 || m.IDs[1] != 2 {
		t.Errorf("IDs = %v, want [0 2]", m.IDs)
	}
	if !strings.Contains(m.Message, "removed vertex 1 and 2 edges") {
		t.Errorf("Message = %q", m.Message)
	}

	// Deleting the last row moves the cursor up.
	m = press(m, "j", "d")
	if m.Cursor != 0 || len(m.IDs) != 1 {
		t.Errorf("Cursor = %d, IDs = %v", m.Cursor, m.IDs)
	}

	m = press(m, "d", "d")
	if len(m.IDs) != 0 || g.VertexCount() != 0 {
		t.Errorf("graph should be empty, IDs = %v", m.IDs)
	}
	if !strings.Contains(m.View(), "graph is empty") {
		t.Errorf("empty view:\n%s", m.View())
	}
}

func TestInspectDeleteSelfLoop(t *testing.T) {
	g := pathGraph(t, 2)
	if _, err := g.AddEdge(sparse.Edge{Start: 0, End: 0}); err != nil {
		t.Fatal(err)
	}
	m := NewInspectModel(g)

	m = press(m, "d")
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
	// The loop is listed twice on vertex 0 but is a single edge.
	if !strings.Contains(m.Message, "removed vertex 0 and 2 edges") {
		t.Errorf("Message = %q", m.Message)
	}
}

func TestInspectView(t *testing.T) {
	m := NewInspectModel(pathGraph(t, 3))
	m = press(m, "j", "enter")

	view := m.View()
	for _, want := range []string{"Skeleton Vertices", "Degree", "edge 0", "edge 1", "→ vertex 0", "→ vertex 2", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestInspectQuit(t *testing.T) {
	m := NewInspectModel(sparse.New())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

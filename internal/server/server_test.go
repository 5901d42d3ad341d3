package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skelgraph/pkg/cache"
	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/pipeline"
	"github.com/matzehuels/skelgraph/pkg/store"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	opts.Logger = log.New(io.Discard)
	return New(nil, opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code serrors.Code) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if got := decode[errorResponse](t, w); got.Code != code {
		t.Errorf("code = %s, want %s", got.Code, code)
	}
}

func addVertex(t *testing.T, s *Server, body string) int64 {
	t.Helper()
	w := do(t, s, http.MethodPost, "/vertices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /vertices = %d: %s", w.Code, w.Body.String())
	}
	return decode[idResponse](t, w).ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	if w := do(t, s, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestVertexEdgeLifecycle(t *testing.T) {
	s := newTestServer(t, Options{})

	a := addVertex(t, s, `{"point": [0, 0, 0], "distance": 0.5}`)
	b := addVertex(t, s, `{"point": [3, 4, 0]}`)
	c := addVertex(t, s, `{"point": [0, 0, 1]}`)
	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("ids = %d %d %d, want 0 1 2", a, b, c)
	}

	w := do(t, s, http.MethodPost, "/edges", `{"start": 0, "end": 1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /edges = %d: %s", w.Code, w.Body.String())
	}
	do(t, s, http.MethodPost, "/edges", `{"start": 1, "end": 2}`)

	e := decode[edgeResponse](t, do(t, s, http.MethodGet, "/edges/0", ""))
	if e.Length != 5 || e.StartDistance != 0.5 {
		t.Errorf("edge 0 = %+v", e)
	}

	for _, tt := range []struct {
		query string
		want  bool
	}{
		{"a=0&b=1", true},
		{"a=1&b=0", true},
		{"a=0&b=2", false},
		{"a=9&b=0", false},
	} {
		got := decode[connectedResponse](t, do(t, s, http.MethodGet, "/connected?"+tt.query, ""))
		if got.Connected != tt.want {
			t.Errorf("connected?%s = %v, want %v", tt.query, got.Connected, tt.want)
		}
	}

	v := decode[vertexResponse](t, do(t, s, http.MethodGet, "/vertices/1", ""))
	if len(v.Edges) != 2 || v.Edges[0] != 0 || v.Edges[1] != 1 {
		t.Errorf("vertex 1 edges = %v, want [0 1]", v.Edges)
	}

	if w := do(t, s, http.MethodDelete, "/vertices/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("DELETE /vertices/1 = %d", w.Code)
	}
	expectError(t, do(t, s, http.MethodGet, "/edges/0", ""), http.StatusNotFound, serrors.ErrCodeEdgeNotFound)
	expectError(t, do(t, s, http.MethodGet, "/edges/1", ""), http.StatusNotFound, serrors.ErrCodeEdgeNotFound)

	v = decode[vertexResponse](t, do(t, s, http.MethodGet, "/vertices/0", ""))
	if len(v.Edges) != 0 {
		t.Errorf("vertex 0 edges = %v, want none", v.Edges)
	}

	stats := decode[statsResponse](t, do(t, s, http.MethodGet, "/graph", ""))
	if stats.Vertices != 2 || stats.Edges != 0 || stats.NextVertexID != 3 || stats.NextEdgeID != 2 {
		t.Errorf("stats = %+v", stats)
	}

	expectError(t, do(t, s, http.MethodDelete, "/vertices/1", ""), http.StatusNotFound, serrors.ErrCodeVertexNotFound)
	expectError(t, do(t, s, http.MethodDelete, "/edges/0", ""), http.StatusNotFound, serrors.ErrCodeEdgeNotFound)
}

func TestAddEdgeMissingVertex(t *testing.T) {
	s := newTestServer(t, Options{})
	addVertex(t, s, `{"point": [0, 0, 0]}`)

	expectError(t, do(t, s, http.MethodPost, "/edges", `{"start": 0, "end": 7}`), http.StatusNotFound, serrors.ErrCodeVertexNotFound)

	stats := decode[statsResponse](t, do(t, s, http.MethodGet, "/graph", ""))
	if stats.Edges != 0 || stats.NextEdgeID != 0 {
		t.Errorf("failed insert changed the graph: %+v", stats)
	}
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct {
		name, method, path, body string
		status                   int
		code                     serrors.Code
	}{
		{"NonNumericID", http.MethodGet, "/vertices/abc", "", http.StatusBadRequest, serrors.ErrCodeInvalidID},
		{"NegativeID", http.MethodGet, "/edges/-1", "", http.StatusBadRequest, serrors.ErrCodeInvalidID},
		{"MissingQuery", http.MethodGet, "/connected?a=1", "", http.StatusBadRequest, serrors.ErrCodeInvalidID},
		{"UnknownField", http.MethodPost, "/vertices", `{"pos": [0,0,0]}`, http.StatusBadRequest, serrors.ErrCodeInvalidInput},
		{"MalformedBody", http.MethodPost, "/edges", `{`, http.StatusBadRequest, serrors.ErrCodeInvalidInput},
		{"BadTransform", http.MethodPost, "/transform", "[[step]]\nangle_deg = 3.0\n", http.StatusBadRequest, serrors.ErrCodeInvalidInput},
		{"BadPlane", http.MethodGet, "/render?plane=zx", "", http.StatusBadRequest, serrors.ErrCodeInvalidFormat},
		{"BadFormat", http.MethodGet, "/render?format=png", "", http.StatusBadRequest, serrors.ErrCodeInvalidFormat},
		{"BadDetailed", http.MethodGet, "/render?detailed=maybe", "", http.StatusBadRequest, serrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, do(t, s, tt.method, tt.path, tt.body), tt.status, tt.code)
		})
	}
}

func TestTransformAndClear(t *testing.T) {
	s := newTestServer(t, Options{})
	addVertex(t, s, `{"point": [1, 0, 0]}`)
	addVertex(t, s, `{"point": [0, 0, 0]}`)
	do(t, s, http.MethodPost, "/edges", `{"start": 0, "end": 1}`)

	doc := "[[step]]\naxis = [0.0, 0.0, 1.0]\nangle_deg = 90.0\n\n[[step]]\ntranslation = [0.0, 0.0, 2.0]\n"
	if w := do(t, s, http.MethodPost, "/transform", doc); w.Code != http.StatusNoContent {
		t.Fatalf("POST /transform = %d: %s", w.Code, w.Body.String())
	}

	e := decode[edgeResponse](t, do(t, s, http.MethodGet, "/edges/0", ""))
	want := [3]float64{0, 1, 2}
	for i := range want {
		if d := e.StartPoint[i] - want[i]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("start point = %v, want %v", e.StartPoint, want)
		}
	}

	if w := do(t, s, http.MethodPost, "/clear", ""); w.Code != http.StatusNoContent {
		t.Fatalf("POST /clear = %d", w.Code)
	}
	stats := decode[statsResponse](t, do(t, s, http.MethodGet, "/graph", ""))
	if stats != (statsResponse{}) {
		t.Errorf("stats after clear = %+v", stats)
	}
}

func TestExportImport(t *testing.T) {
	s := newTestServer(t, Options{})
	addVertex(t, s, `{"point": [0, 0, 0]}`)
	addVertex(t, s, `{"point": [1, 1, 1]}`)
	do(t, s, http.MethodPost, "/edges", `{"start": 0, "end": 1}`)
	do(t, s, http.MethodDelete, "/vertices/0", "")
	addVertex(t, s, `{"point": [2, 2, 2]}`)

	exported := do(t, s, http.MethodGet, "/export", "").Body.String()

	other := newTestServer(t, Options{})
	w := do(t, other, http.MethodPost, "/import", exported)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /import = %d: %s", w.Code, w.Body.String())
	}
	stats := decode[statsResponse](t, w)
	if stats.Vertices != 2 || stats.NextVertexID != 3 || stats.NextEdgeID != 0 {
		t.Errorf("imported stats = %+v", stats)
	}
	if again := do(t, other, http.MethodGet, "/export", "").Body.String(); again != exported {
		t.Errorf("re-export differs:\n%s\n---\n%s", exported, again)
	}
}

func TestImportRejectsBadGraphs(t *testing.T) {
	s := newTestServer(t, Options{})
	expectError(t, do(t, s, http.MethodPost, "/import", `not json`), http.StatusBadRequest, serrors.ErrCodeInvalidFormat)
	dangling := `{"vertices": [{"id": 0, "point": [0,0,0], "edges": [0]}], "edges": [{"id": 0, "start": 0, "end": 5, "start_point": [0,0,0], "end_point": [0,0,0]}]}`
	expectError(t, do(t, s, http.MethodPost, "/import", dangling), http.StatusUnprocessableEntity, serrors.ErrCodeCorruptGraph)
	maxID := `{"vertices": [{"id": 9223372036854775807, "point": [0,0,0], "edges": []}], "edges": []}`
	expectError(t, do(t, s, http.MethodPost, "/import", maxID), http.StatusUnprocessableEntity, serrors.ErrCodeCorruptGraph)
}

func TestRenderCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, Options{Runner: pipeline.NewRunner(fc, nil, log.New(io.Discard))})
	addVertex(t, s, `{"point": [0, 0, 0]}`)
	addVertex(t, s, `{"point": [0, 2, 3]}`)
	do(t, s, http.MethodPost, "/edges", `{"start": 0, "end": 1}`)

	w := do(t, s, http.MethodGet, "/render?format=dot&plane=yz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /render = %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if !strings.Contains(w.Body.String(), `pos="2,3!"`) {
		t.Errorf("DOT missing projected position:\n%s", w.Body.String())
	}

	w = do(t, s, http.MethodGet, "/render?format=dot&plane=yz", "")
	if got := w.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if w.Header().Get("Content-Type") != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
}

func TestSnapshotsWithoutStore(t *testing.T) {
	s := newTestServer(t, Options{})
	expectError(t, do(t, s, http.MethodGet, "/snapshots", ""), http.StatusNotImplemented, serrors.ErrCodeUnsupported)
}

func TestSnapshots(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, Options{Store: st})
	addVertex(t, s, `{"point": [0, 0, 0]}`)

	w := do(t, s, http.MethodPost, "/snapshots?name=first", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /snapshots = %d: %s", w.Code, w.Body.String())
	}
	snap := decode[store.Snapshot](t, w)
	if snap.Name != "first" || snap.Vertices != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	list := decode[[]store.Snapshot](t, do(t, s, http.MethodGet, "/snapshots", ""))
	if len(list) != 1 || list[0].ID != snap.ID {
		t.Errorf("list = %+v", list)
	}

	do(t, s, http.MethodPost, "/clear", "")
	w = do(t, s, http.MethodPost, "/snapshots/"+snap.ID+"/restore", "")
	if w.Code != http.StatusOK {
		t.Fatalf("restore = %d: %s", w.Code, w.Body.String())
	}
	if stats := decode[statsResponse](t, w); stats.Vertices != 1 || stats.NextVertexID != 1 {
		t.Errorf("restored stats = %+v", stats)
	}

	if w := do(t, s, http.MethodDelete, "/snapshots/"+snap.ID, ""); w.Code != http.StatusNoContent {
		t.Fatalf("DELETE snapshot = %d", w.Code)
	}
	expectError(t, do(t, s, http.MethodDelete, "/snapshots/"+snap.ID, ""), http.StatusNotFound, serrors.ErrCodeSnapshotNotFound)
	expectError(t, do(t, s, http.MethodPost, "/snapshots/not-a-uuid/restore", ""), http.StatusBadRequest, serrors.ErrCodeInvalidID)
}

func TestRecoversFromPanics(t *testing.T) {
	s := newTestServer(t, Options{})
	s.router.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", bytes.NewReader(nil)))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// FileStore keeps each snapshot in <dir>/<id>.json.
type FileStore struct {
	dir    string
	logger *log.Logger
}

type fileEnvelope struct {
	Snapshot Snapshot        `json:"snapshot"`
	Graph    json.RawMessage `json:"graph"`
}

// NewFileStore creates a store rooted at dir, creating the directory if
// needed. A nil logger discards debug output.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the store root directory.
func (s *FileStore) Dir() string { return s.dir }

// Put saves g as a new snapshot.
func (s *FileStore) Put(ctx context.Context, name string, g *sparse.Graph) (Snapshot, error) {
	snap, data, err := newSnapshot(name, g)
	if err != nil {
		return Snapshot{}, err
	}
	raw, err := json.Marshal(fileEnvelope{Snapshot: snap, Graph: data})
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(snap.ID), raw, 0644); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	s.logger.Debug("stored snapshot", "id", snap.ID, "vertices", snap.Vertices, "edges", snap.Edges)
	return snap, nil
}

// Get loads a snapshot.
func (s *FileStore) Get(ctx context.Context, id string) (*sparse.Graph, error) {
	env, err := s.read(id)
	if err != nil {
		return nil, err
	}
	g, err := decodeGraph(env.Graph)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return g, nil
}

// List returns all snapshots, newest first. Files that fail to parse are
// skipped with a warning.
func (s *FileStore) List(ctx context.Context) ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		env, err := s.read(id)
		if err != nil {
			s.logger.Warn("skipping unreadable snapshot", "file", e.Name(), "err", err)
			continue
		}
		snaps = append(snaps, env.Snapshot)
	}
	slices.SortFunc(snaps, func(a, b Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return snaps, nil
}

// Delete removes a snapshot.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := serrors.ValidateSnapshotID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err == nil {
		s.logger.Debug("deleted snapshot", "id", id)
	}
	return err
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(id string) (*fileEnvelope, error) {
	if err := serrors.ValidateSnapshotID(id); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("snapshot %s: decode: %w", id, err)
	}
	return &env, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, strings.ToLower(id)+".json")
}

var _ Store = (*FileStore)(nil)

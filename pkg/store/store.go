// Package store persists skeleton graph snapshots.
//
// A snapshot is an immutable copy of a [sparse.Graph] saved under a random
// UUID, together with a short label and entity counts. Two backends
// implement [Store]:
//   - [FileStore]: one JSON file per snapshot in a directory
//   - [MongoStore]: one document per snapshot in a MongoDB collection
//
// Both serialize graphs with the skelgraph JSON format, so a snapshot pulled
// from either backend restores the original ids and adjacency order.
package store

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	skelio "github.com/matzehuels/skelgraph/pkg/io"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// ErrNotFound is returned when no snapshot has the requested id.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes a stored graph.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Vertices  int       `json:"vertices" bson:"vertices"`
	Edges     int       `json:"edges" bson:"edges"`
}

// Store saves and loads graph snapshots.
type Store interface {
	// Put saves a copy of g and returns its metadata. Later changes to g do
	// not affect the snapshot.
	Put(ctx context.Context, name string, g *sparse.Graph) (Snapshot, error)

	// Get loads the snapshot with the given id. Returns ErrNotFound if it
	// does not exist.
	Get(ctx context.Context, id string) (*sparse.Graph, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// newSnapshot serializes g and builds its metadata with a fresh id.
func newSnapshot(name string, g *sparse.Graph) (Snapshot, []byte, error) {
	data, err := skelio.MarshalGraph(g)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
	}, data, nil
}

func decodeGraph(data []byte) (*sparse.Graph, error) {
	return skelio.ReadJSON(bytes.NewReader(data))
}

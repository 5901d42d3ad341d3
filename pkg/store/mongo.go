package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/skelgraph/pkg/cache"
	serrors "github.com/matzehuels/skelgraph/pkg/errors"
	"github.com/matzehuels/skelgraph/pkg/sparse"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string        // Connection string, e.g. mongodb://localhost:27017
	Database   string        // Defaults to "skelgraph"
	Collection string        // Defaults to "snapshots"
	Timeout    time.Duration // Connect timeout; defaults to 10s
}

// MongoStore keeps snapshots as documents in a MongoDB collection. The
// graph itself is stored as its JSON encoding in the "graph" field; the
// remaining fields mirror [Snapshot].
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

type mongoDocument struct {
	Snapshot `bson:",inline"`
	Graph    []byte `bson:"graph"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
// A nil logger discards debug output.
func NewMongoStore(ctx context.Context, cfg MongoConfig, logger *log.Logger) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "skelgraph"
	}
	if cfg.Collection == "" {
		cfg.Collection = "snapshots"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout).SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w: %w", cache.ErrBackend, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w: %w", cache.ErrBackend, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		logger: logger,
	}, nil
}

// Put saves g as a new snapshot document.
func (s *MongoStore) Put(ctx context.Context, name string, g *sparse.Graph) (Snapshot, error) {
	snap, data, err := newSnapshot(name, g)
	if err != nil {
		return Snapshot{}, err
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		_, err := s.coll.InsertOne(ctx, mongoDocument{Snapshot: snap, Graph: data})
		return mongoErr(err)
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.logger.Debug("stored snapshot", "id", snap.ID, "vertices", snap.Vertices, "edges", snap.Edges)
	return snap, nil
}

// Get loads a snapshot document.
func (s *MongoStore) Get(ctx context.Context, id string) (*sparse.Graph, error) {
	if err := serrors.ValidateSnapshotID(id); err != nil {
		return nil, err
	}
	var doc mongoDocument
	err := cache.RetryWithBackoff(ctx, func() error {
		return mongoErr(s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc))
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	g, err := decodeGraph(doc.Graph)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return g, nil
}

// List returns snapshot metadata, newest first. Graph payloads are not
// fetched.
func (s *MongoStore) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"graph": 0})

	var snaps []Snapshot
	err := cache.RetryWithBackoff(ctx, func() error {
		cur, err := s.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return mongoErr(err)
		}
		defer cur.Close(ctx)
		snaps = nil
		return mongoErr(cur.All(ctx, &snaps))
	})
	return snaps, err
}

// Delete removes a snapshot document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := serrors.ValidateSnapshotID(id); err != nil {
		return err
	}
	var deleted int64
	err := cache.RetryWithBackoff(ctx, func() error {
		res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return mongoErr(err)
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	s.logger.Debug("deleted snapshot", "id", id)
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoErr marks network failures and timeouts as retryable backend errors.
func mongoErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrBackend, err))
	}
	return err
}

var _ Store = (*MongoStore)(nil)

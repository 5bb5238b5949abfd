// Package store persists graphs and their computed layouts in MongoDB.
// It backs the HTTP server; CLI usage works entirely from files and never
// touches this package.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/dagviz/pkg/errors"
	"github.com/matzehuels/dagviz/pkg/graph"
	"github.com/matzehuels/dagviz/pkg/layout"
)

const graphsCollection = "graphs"

// Record is a stored graph together with the configuration and geometry of
// its most recent layout run.
type Record struct {
	ID        string           `bson:"_id" json:"id"`
	Name      string           `bson:"name" json:"name"`
	Graph     graph.Graph      `bson:"graph" json:"graph"`
	Config    layout.Config    `bson:"config" json:"config"`
	Geometry  *layout.Geometry `bson:"geometry,omitempty" json:"geometry,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at" json:"updated_at"`
}

// Store provides CRUD access to stored graphs.
type Store struct {
	client *mongo.Client
	graphs *mongo.Collection
}

// Connect establishes a MongoDB connection and returns a Store bound to
// the given database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &Store{
		client: client,
		graphs: client.Database(database).Collection(graphsCollection),
	}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Save stores a new graph with its layout configuration and returns the
// generated record ID.
func (s *Store) Save(ctx context.Context, g *graph.Graph, cfg layout.Config) (string, error) {
	rec := newRecord(g, cfg)
	if _, err := s.graphs.InsertOne(ctx, rec); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "insert graph %q", rec.Name)
	}
	return rec.ID, nil
}

// Get returns the record with the given ID.
// Returns a GRAPH_NOT_FOUND error when no record exists.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.graphs.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find graph %q", id)
	}
	return &rec, nil
}

// SetGeometry attaches a computed geometry to an existing record.
func (s *Store) SetGeometry(ctx context.Context, id string, geo layout.Geometry) error {
	update := bson.M{"$set": bson.M{
		"geometry":   geo,
		"updated_at": time.Now().UTC(),
	}}
	res, err := s.graphs.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "update graph %q", id)
	}
	if res.MatchedCount == 0 {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", id)
	}
	return nil
}

// List returns all stored records ordered by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.graphs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list graphs")
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode graph records")
	}
	return records, nil
}

// Delete removes the record with the given ID.
// Returns a GRAPH_NOT_FOUND error when no record exists.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.graphs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete graph %q", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", id)
	}
	return nil
}

// newRecord builds a fresh record with a generated ID and timestamps.
func newRecord(g *graph.Graph, cfg layout.Config) Record {
	now := time.Now().UTC()
	return Record{
		ID:        uuid.NewString(),
		Name:      g.Name,
		Graph:     *g,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

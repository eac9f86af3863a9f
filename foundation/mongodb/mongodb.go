// Package mongodb provides support for connecting to and working with mongodb.
package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes a connection against the specified mongodb server and
// verifies the server is reachable.
func Connect(ctx context.Context, uri string, user string, password string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)

	if user != "" {
		auth := options.Credential{
			Username: user,
			Password: password,
		}
		opts = opts.SetAuth(auth)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// CreateCollection creates the specified collection if it doesn't already
// exist and returns a handle to it.
func CreateCollection(ctx context.Context, db *mongo.Database, name string) (*mongo.Collection, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	if len(names) == 0 {
		if err := db.CreateCollection(ctx, name); err != nil {
			return nil, fmt.Errorf("create collection: %w", err)
		}
	}

	return db.Collection(name), nil
}

// =============================================================================

// VectorIndexSettings represents the settings required to create a vector
// search index.
type VectorIndexSettings struct {
	NumDimensions int
	Path          string
	Similarity    string
}

// CreateVectorIndex creates a vector search index on the specified collection.
// An index that already exists is left in place.
func CreateVectorIndex(ctx context.Context, col *mongo.Collection, indexName string, settings VectorIndexSettings) error {
	definition := bson.D{
		{Key: "fields", Value: bson.A{
			bson.D{
				{Key: "type", Value: "vector"},
				{Key: "numDimensions", Value: settings.NumDimensions},
				{Key: "path", Value: settings.Path},
				{Key: "similarity", Value: settings.Similarity},
			},
		}},
	}

	model := mongo.SearchIndexModel{
		Definition: definition,
		Options: options.SearchIndexes().
			SetName(indexName).
			SetType("vectorSearch"),
	}

	if _, err := col.SearchIndexes().CreateOne(ctx, model); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil
		}
		return fmt.Errorf("create search index: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/treenow/treenowbackend/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect opens one client for the life of the process and pings the
// primary before returning it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	// Send a ping to confirm a successful connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Println("Pinged your deployment. You successfully connected to MongoDB!")
	return client, nil
}

// EnsureIndexes creates the indexes the store relies on: the 2dsphere index
// behind nearby lookups, the text lookup index on locations, and the unique
// keys that back duplicate detection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		store.UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		store.LocationsCollection: {
			{Keys: bson.D{{Key: "state", Value: 1}, {Key: "district", Value: 1}, {Key: "city", Value: 1}}},
			{Keys: bson.D{{Key: "geo", Value: "2dsphere"}}},
		},
		store.LinksCollection: {
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "ownerId", Value: 1}, {Key: "targetId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "targetId", Value: 1}}},
		},
		store.CartsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		store.OrdersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

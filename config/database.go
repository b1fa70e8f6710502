package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitDB connects to MongoDB and returns the client together with a handle
// on the application database. The caller owns the client and is expected
// to Disconnect it on shutdown.
func InitDB(ctx context.Context, config Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(time.Hour)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	db := client.Database(config.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("index creation failed: %w", err)
	}

	return client, db, nil
}

// ensureIndexes creates the indexes the query paths rely on. Usernames are
// unique; task and subtask lookups are always scoped by owner or parent.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("tasks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}, {Key: "due_date", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("subtasks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "is_deleted", Value: 1}},
	})
	return err
}

// Package dbmongo stores accounts, friend requests and friendships in MongoDB.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"planetpal/internal/config"
)

const (
	AccountsCollection       = "accounts"
	FriendRequestsCollection = "friend_requests"
	FriendshipsCollection    = "friendships"
	RequestPairsCollection   = "request_pairs"
	DailyTasksCollection     = "daily_tasks"
)

// requestPairTTL bounds how long an idle pair marker is kept. Markers only
// matter while a CreateRequest transaction is in flight.
const requestPairTTL = 7 * 24 * time.Hour

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	return Connect(c.GetMongoURI(), c.MongoDB.Database)
}

func Connect(uri, database string) (*MongoClient, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoClient{
		Client:   client,
		Database: client.Database(database),
	}, nil
}

// EnsureIndexes creates the indexes the stores query by. It is idempotent.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		AccountsCollection: {
			{Keys: bson.D{{Key: "searchName", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		FriendRequestsCollection: {
			{Keys: bson.D{{Key: "fromId", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "toId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		FriendshipsCollection: {
			{Keys: bson.D{{Key: "users", Value: 1}}},
		},
		RequestPairsCollection: {
			{
				Keys:    bson.D{{Key: "lastRequestAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(int32(requestPairTTL.Seconds())),
			},
		},
		DailyTasksCollection: {
			{Keys: bson.D{{Key: "accountId", Value: 1}, {Key: "date", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := mc.Database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}

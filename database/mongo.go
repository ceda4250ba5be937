package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	ReviewsCollection  = "reviews"
	OrdersCollection   = "orders"
)

// Mongo is an open connection handle. It is passed to repositories instead of
// living in package state.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect connects to MongoDB using the provided URI and database name and
// verifies the connection with a ping.
func Connect(ctx context.Context, mongoURL, dbName string) (*Mongo, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	zap.L().Info("Connected to MongoDB", zap.String("database", dbName))
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Ping checks that the deployment is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (m *Mongo) Close() error {
	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	zap.L().Info("Disconnected from MongoDB")
	return nil
}

// EnsureIndexes creates the indexes the storefront relies on. The unique
// indexes on users.email and orders.order_id make the database the final
// arbiter of uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_order_id")},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("user_orders")},
		},
		ReviewsCollection: {
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("product_reviews")},
		},
		ProductsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("newest_first")},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

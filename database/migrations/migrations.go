// Package migrations creates the MongoDB indexes the application relies on.
// Index creation is idempotent; running migrate repeatedly is safe.
package migrations

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/stockly/pkg/logger"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

// specs is the full index set. SKU uniqueness is global, not per-user;
// email uniqueness backs registration. The compound userId indexes serve
// the owner-scoped list queries.
var specs = []indexSpec{
	{
		collection: "users",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	},
	{
		collection: "products",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sku"),
		},
	},
	{
		collection: "products",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created"),
		},
	},
	{
		collection: "products",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("user_status"),
		},
	},
	{
		collection: "categories",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("user_name"),
		},
	},
	{
		collection: "suppliers",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("user_name"),
		},
	},
}

// Run creates every index against db.
func Run(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, spec := range specs {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			return fmt.Errorf("migrations: %s: %w", spec.collection, err)
		}
		logger.Info("index ensured", "collection", spec.collection, "index", name)
	}
	return nil
}

package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/pkg/auth"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo inserts a demo account with a small inventory. Skips itself when
// the demo user already exists, so reruns are harmless.
func SeedDemo(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	const demoEmail = "demo@stockly.local"
	if err := users.FindOne(ctx, bson.M{"email": demoEmail}).Err(); err == nil {
		return nil // already seeded
	} else if err != mongo.ErrNoDocuments {
		return fmt.Errorf("seed demo: lookup: %w", err)
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return fmt.Errorf("seed demo: hash: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Demo User",
		Email:     demoEmail,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("seed demo: user: %w", err)
	}

	category := models.Category{
		ID: primitive.NewObjectID(), Name: "Electronics",
		UserID: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := db.Collection("categories").InsertOne(ctx, category); err != nil {
		return fmt.Errorf("seed demo: category: %w", err)
	}

	supplier := models.Supplier{
		ID: primitive.NewObjectID(), Name: "Acme Supply Co",
		UserID: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := db.Collection("suppliers").InsertOne(ctx, supplier); err != nil {
		return fmt.Errorf("seed demo: supplier: %w", err)
	}

	products := []any{}
	for i, seedProduct := range []struct {
		name     string
		sku      string
		price    float64
		quantity int64
	}{
		{"Wireless Keyboard", "DEMO-KB-01", 49.99, 25},
		{"USB-C Hub", "DEMO-HUB-01", 34.50, 12},
		{"Laptop Stand", "DEMO-STAND-01", 27.00, 0},
	} {
		products = append(products, models.Product{
			ID:         primitive.NewObjectID(),
			Name:       seedProduct.name,
			SKU:        seedProduct.sku,
			Price:      seedProduct.price,
			Quantity:   seedProduct.quantity,
			Status:     models.DeriveStatus(seedProduct.quantity),
			CategoryID: category.ID,
			SupplierID: supplier.ID,
			UserID:     user.ID,
			CreatedAt:  now.Add(time.Duration(i) * time.Second),
			UpdatedAt:  now.Add(time.Duration(i) * time.Second),
		})
	}
	if _, err := db.Collection("products").InsertMany(ctx, products); err != nil {
		return fmt.Errorf("seed demo: products: %w", err)
	}
	return nil
}

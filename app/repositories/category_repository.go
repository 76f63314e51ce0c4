package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/pkg/database"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) col() *mongo.Collection {
	return database.Collection(categoriesCollection)
}

// Create inserts a new category owned by userID.
func (r *CategoryRepository) Create(ctx context.Context, userID primitive.ObjectID, c *models.Category) error {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.UserID = userID
	c.Name = strings.TrimSpace(c.Name)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, c); err != nil {
		return fmt.Errorf("categories: create: %w", err)
	}
	return nil
}

// List returns all categories owned by userID, newest first.
func (r *CategoryRepository) List(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("categories: list: %w", err)
	}

	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	return categories, nil
}

// Update renames the category identified by c.ID if userID owns it.
func (r *CategoryRepository) Update(ctx context.Context, userID primitive.ObjectID, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.UpdatedAt = time.Now().UTC()

	res := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": c.ID, "userId": userID},
		bson.M{"$set": bson.M{"name": c.Name, "updatedAt": c.UpdatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	if err := res.Decode(c); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("categories: update: %w", err)
	}
	return nil
}

// Delete removes the category by id if userID owns it. Products referencing
// it are left untouched; their reference renders as "Unknown".
func (r *CategoryRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("categories: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

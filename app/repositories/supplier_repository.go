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

// SupplierRepository handles database operations for Supplier.
type SupplierRepository struct{}

func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{}
}

func (r *SupplierRepository) col() *mongo.Collection {
	return database.Collection(suppliersCollection)
}

// Create inserts a new supplier owned by userID.
func (r *SupplierRepository) Create(ctx context.Context, userID primitive.ObjectID, s *models.Supplier) error {
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID()
	s.UserID = userID
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, s); err != nil {
		return fmt.Errorf("suppliers: create: %w", err)
	}
	return nil
}

// List returns all suppliers owned by userID, newest first.
func (r *SupplierRepository) List(ctx context.Context, userID primitive.ObjectID) ([]models.Supplier, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list: %w", err)
	}

	var suppliers []models.Supplier
	if err := cur.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("suppliers: decode: %w", err)
	}
	return suppliers, nil
}

// Update replaces the mutable fields of the supplier identified by s.ID if
// userID owns it.
func (r *SupplierRepository) Update(ctx context.Context, userID primitive.ObjectID, s *models.Supplier) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.UpdatedAt = time.Now().UTC()

	res := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": s.ID, "userId": userID},
		bson.M{"$set": bson.M{
			"name":      s.Name,
			"email":     s.Email,
			"phone":     s.Phone,
			"updatedAt": s.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	if err := res.Decode(s); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("suppliers: update: %w", err)
	}
	return nil
}

// Delete removes the supplier by id if userID owns it. No cascade.
func (r *SupplierRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("suppliers: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

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
	"github.com/shashiranjanraj/stockly/pkg/metrics"
)

// ProductRepository handles database operations for Product.
//
// Every read and mutation is scoped by the owning user's id. SKU uniqueness
// is global (not per-user) and rests on the unique index, never on a
// check-then-insert.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection(productsCollection)
}

// NormalizeSKU applies the persisted SKU form: trimmed, upper-cased.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Create inserts a new product for userID. Status is recomputed from
// quantity regardless of what the caller set. Returns the created record
// with category/supplier names resolved.
func (r *ProductRepository) Create(ctx context.Context, userID primitive.ObjectID, p *models.Product) error {
	defer metrics.ObserveMongoQuery(productsCollection, "insert", time.Now())
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.UserID = userID
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = NormalizeSKU(p.SKU)
	p.Status = models.DeriveStatus(p.Quantity)
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSKUConflict
		}
		return fmt.Errorf("products: create: %w", err)
	}

	return r.resolveNames(ctx, []*models.Product{p})
}

// List returns all products owned by userID, newest first, with
// category/supplier names resolved.
func (r *ProductRepository) List(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error) {
	defer metrics.ObserveMongoQuery(productsCollection, "find", time.Now())
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.resolveNames(ctx, refs); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID returns the product only when it exists and belongs to userID.
func (r *ProductRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col().FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("products: find: %w", err)
	}
	if err := r.resolveNames(ctx, []*models.Product{&p}); err != nil {
		return p, err
	}
	return p, nil
}

// Update replaces the mutable fields of the product identified by p.ID,
// provided it belongs to userID. Status is recomputed from the supplied
// quantity; the stored creation timestamp is preserved.
func (r *ProductRepository) Update(ctx context.Context, userID primitive.ObjectID, p *models.Product) error {
	defer metrics.ObserveMongoQuery(productsCollection, "update", time.Now())
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = NormalizeSKU(p.SKU)
	p.Status = models.DeriveStatus(p.Quantity)
	p.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":       p.Name,
		"sku":        p.SKU,
		"price":      p.Price,
		"quantity":   p.Quantity,
		"status":     p.Status,
		"categoryId": p.CategoryID,
		"supplierId": p.SupplierID,
		"updatedAt":  p.UpdatedAt,
	}}

	res := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": p.ID, "userId": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Product
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return ErrSKUConflict
		}
		return fmt.Errorf("products: update: %w", err)
	}

	*p = updated
	return r.resolveNames(ctx, []*models.Product{p})
}

// Delete removes the product by id if it belongs to userID.
// Deleting does not touch categories or suppliers.
func (r *ProductRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	defer metrics.ObserveMongoQuery(productsCollection, "delete", time.Now())
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SKUExists reports whether sku (any case) is already taken.
// Advisory only: the unique index remains the authority under concurrency.
func (r *ProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	n, err := r.col().CountDocuments(ctx, bson.M{"sku": NormalizeSKU(sku)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("products: sku exists: %w", err)
	}
	return n > 0, nil
}

// resolveNames attaches category and supplier display names to the given
// products with one batched $in query per collection. Dangling references
// render as "Unknown".
func (r *ProductRepository) resolveNames(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	catIDs := make(map[primitive.ObjectID]struct{})
	supIDs := make(map[primitive.ObjectID]struct{})
	for _, p := range products {
		catIDs[p.CategoryID] = struct{}{}
		supIDs[p.SupplierID] = struct{}{}
	}

	catNames, err := namesByID(ctx, database.Collection(categoriesCollection), catIDs)
	if err != nil {
		return fmt.Errorf("products: resolve categories: %w", err)
	}
	supNames, err := namesByID(ctx, database.Collection(suppliersCollection), supIDs)
	if err != nil {
		return fmt.Errorf("products: resolve suppliers: %w", err)
	}

	for _, p := range products {
		if p.Category = catNames[p.CategoryID]; p.Category == "" {
			p.Category = unknownName
		}
		if p.Supplier = supNames[p.SupplierID]; p.Supplier == "" {
			p.Supplier = unknownName
		}
	}
	return nil
}

func namesByID(ctx context.Context, col *mongo.Collection, ids map[primitive.ObjectID]struct{}) (map[primitive.ObjectID]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	list := make([]primitive.ObjectID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	cur, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": list}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]string, len(docs))
	for _, d := range docs {
		out[d.ID] = d.Name
	}
	return out, nil
}

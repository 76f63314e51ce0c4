package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/pkg/ws"
)

// InventoryService owns product, category, and supplier mutations. Every
// confirmed write broadcasts an event on the inventory hub so open
// dashboards reload.
type InventoryService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	suppliers  *repositories.SupplierRepository
}

func NewInventoryService() *InventoryService {
	return &InventoryService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
		suppliers:  repositories.NewSupplierRepository(),
	}
}

// Products exposes the product repository for read-only consumers.
func (s *InventoryService) Products() *repositories.ProductRepository { return s.products }

// Categories exposes the category repository for read-only consumers.
func (s *InventoryService) Categories() *repositories.CategoryRepository { return s.categories }

// Suppliers exposes the supplier repository for read-only consumers.
func (s *InventoryService) Suppliers() *repositories.SupplierRepository { return s.suppliers }

// ─── Products ─────────────────────────────────────────────────────────────────

func (s *InventoryService) ListProducts(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error) {
	return s.products.List(ctx, userID)
}

func (s *InventoryService) CreateProduct(ctx context.Context, userID primitive.ObjectID, p *models.Product) error {
	if err := s.products.Create(ctx, userID, p); err != nil {
		return err
	}
	ws.Publish(ws.EventProductCreated, p.ID.Hex())
	return nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, userID primitive.ObjectID, p *models.Product) error {
	if err := s.products.Update(ctx, userID, p); err != nil {
		return err
	}
	ws.Publish(ws.EventProductUpdated, p.ID.Hex())
	return nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, userID, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, userID, id); err != nil {
		return err
	}
	ws.Publish(ws.EventProductDeleted, id.Hex())
	return nil
}

// CopyProduct clones an existing product as a new one: same fields, name
// suffixed with " (copy)", SKU suffixed with the current Unix millis to
// keep it unique, fresh id and timestamps.
func (s *InventoryService) CopyProduct(ctx context.Context, userID, id primitive.ObjectID) (models.Product, error) {
	src, err := s.products.FindByID(ctx, userID, id)
	if err != nil {
		return models.Product{}, err
	}

	clone := models.Product{
		Name:       src.Name + " (copy)",
		SKU:        fmt.Sprintf("%s-%d", src.SKU, time.Now().UnixMilli()),
		Price:      src.Price,
		Quantity:   src.Quantity,
		CategoryID: src.CategoryID,
		SupplierID: src.SupplierID,
	}
	if err := s.CreateProduct(ctx, userID, &clone); err != nil {
		return models.Product{}, err
	}
	return clone, nil
}

// ─── Categories ───────────────────────────────────────────────────────────────

func (s *InventoryService) ListCategories(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error) {
	return s.categories.List(ctx, userID)
}

func (s *InventoryService) CreateCategory(ctx context.Context, userID primitive.ObjectID, c *models.Category) error {
	if err := s.categories.Create(ctx, userID, c); err != nil {
		return err
	}
	ws.Publish(ws.EventCategoryChanged, c.ID.Hex())
	return nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, userID primitive.ObjectID, c *models.Category) error {
	if err := s.categories.Update(ctx, userID, c); err != nil {
		return err
	}
	ws.Publish(ws.EventCategoryChanged, c.ID.Hex())
	return nil
}

func (s *InventoryService) DeleteCategory(ctx context.Context, userID, id primitive.ObjectID) error {
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return err
	}
	ws.Publish(ws.EventCategoryChanged, id.Hex())
	return nil
}

// ─── Suppliers ────────────────────────────────────────────────────────────────

func (s *InventoryService) ListSuppliers(ctx context.Context, userID primitive.ObjectID) ([]models.Supplier, error) {
	return s.suppliers.List(ctx, userID)
}

func (s *InventoryService) CreateSupplier(ctx context.Context, userID primitive.ObjectID, sup *models.Supplier) error {
	if err := s.suppliers.Create(ctx, userID, sup); err != nil {
		return err
	}
	ws.Publish(ws.EventSupplierChanged, sup.ID.Hex())
	return nil
}

func (s *InventoryService) UpdateSupplier(ctx context.Context, userID primitive.ObjectID, sup *models.Supplier) error {
	if err := s.suppliers.Update(ctx, userID, sup); err != nil {
		return err
	}
	ws.Publish(ws.EventSupplierChanged, sup.ID.Hex())
	return nil
}

func (s *InventoryService) DeleteSupplier(ctx context.Context, userID, id primitive.ObjectID) error {
	if err := s.suppliers.Delete(ctx, userID, id); err != nil {
		return err
	}
	ws.Publish(ws.EventSupplierChanged, id.Hex())
	return nil
}

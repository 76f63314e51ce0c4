// Package store holds the client-side cache of the authenticated user's
// products, categories, and suppliers as an explicit state container with a
// defined mutation API — single source of truth, explicit mutation.
//
// Mutations are never applied optimistically: every Add/Update/Delete calls
// the gateway first and touches the cache only after a confirmed success,
// trading latency for consistency. Callers get a plain ok flag and are
// responsible for user-facing error reporting; failures never leave the
// cache in a "maybe it worked" state.
package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/pkg/logger"
)

// Gateway is the persistence boundary the store mutates through.
type Gateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, s *models.Supplier) error
	UpdateSupplier(ctx context.Context, s *models.Supplier) error
	DeleteSupplier(ctx context.Context, id primitive.ObjectID) error
}

// Store caches one user's inventory lists plus per-entity loading flags.
// Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	gateway Gateway

	products   []models.Product
	categories []models.Category
	suppliers  []models.Supplier

	loadingProducts   bool
	loadingCategories bool
	loadingSuppliers  bool
}

func New(gateway Gateway) *Store {
	return &Store{gateway: gateway}
}

// ── Reads ────────────────────────────────────────────────────────────────────

// Products returns a copy of the cached product list.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Categories returns a copy of the cached category list.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// Suppliers returns a copy of the cached supplier list.
func (s *Store) Suppliers() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Supplier(nil), s.suppliers...)
}

// Loading reports whether any entity list is currently being fetched.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingProducts || s.loadingCategories || s.loadingSuppliers
}

// ── Loads: fetch-and-replace ─────────────────────────────────────────────────

// LoadProducts replaces the product cache with the gateway's current list.
// On failure the cache degrades to an empty list — "nothing shown" beats
// stale data — and the error is logged, not returned.
func (s *Store) LoadProducts(ctx context.Context) {
	s.setLoadingProducts(true)
	defer s.setLoadingProducts(false)

	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("store: load products", "error", err)
		products = nil
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// LoadCategories replaces the category cache.
func (s *Store) LoadCategories(ctx context.Context) {
	s.setLoadingCategories(true)
	defer s.setLoadingCategories(false)

	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("store: load categories", "error", err)
		return
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

// LoadSuppliers replaces the supplier cache.
func (s *Store) LoadSuppliers(ctx context.Context) {
	s.setLoadingSuppliers(true)
	defer s.setLoadingSuppliers(false)

	suppliers, err := s.gateway.ListSuppliers(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("store: load suppliers", "error", err)
		return
	}

	s.mu.Lock()
	s.suppliers = suppliers
	s.mu.Unlock()
}

// ── Product mutations ────────────────────────────────────────────────────────

// AddProduct persists p and appends it to the cache on confirmed success.
func (s *Store) AddProduct(ctx context.Context, p *models.Product) bool {
	if err := s.gateway.CreateProduct(ctx, p); err != nil {
		logger.WithCtx(ctx).Warn("store: add product", "error", err)
		return false
	}

	s.mu.Lock()
	s.products = append(s.products, *p)
	s.mu.Unlock()
	return true
}

// UpdateProduct persists p and replaces the cached row by id on success.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) bool {
	if err := s.gateway.UpdateProduct(ctx, p); err != nil {
		logger.WithCtx(ctx).Warn("store: update product", "error", err)
		return false
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = *p
			break
		}
	}
	s.mu.Unlock()
	return true
}

// DeleteProduct removes the product remotely, then from the cache.
func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) bool {
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		logger.WithCtx(ctx).Warn("store: delete product", "error", err)
		return false
	}

	s.mu.Lock()
	s.products = removeByID(s.products, func(p models.Product) primitive.ObjectID { return p.ID }, id)
	s.mu.Unlock()
	return true
}

// ── Category mutations ───────────────────────────────────────────────────────

func (s *Store) AddCategory(ctx context.Context, c *models.Category) bool {
	if err := s.gateway.CreateCategory(ctx, c); err != nil {
		logger.WithCtx(ctx).Warn("store: add category", "error", err)
		return false
	}

	s.mu.Lock()
	s.categories = append(s.categories, *c)
	s.mu.Unlock()
	return true
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) bool {
	if err := s.gateway.UpdateCategory(ctx, c); err != nil {
		logger.WithCtx(ctx).Warn("store: update category", "error", err)
		return false
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = *c
			break
		}
	}
	s.mu.Unlock()
	return true
}

func (s *Store) DeleteCategory(ctx context.Context, id primitive.ObjectID) bool {
	if err := s.gateway.DeleteCategory(ctx, id); err != nil {
		logger.WithCtx(ctx).Warn("store: delete category", "error", err)
		return false
	}

	s.mu.Lock()
	s.categories = removeByID(s.categories, func(c models.Category) primitive.ObjectID { return c.ID }, id)
	s.mu.Unlock()
	return true
}

// ── Supplier mutations ───────────────────────────────────────────────────────

func (s *Store) AddSupplier(ctx context.Context, sup *models.Supplier) bool {
	if err := s.gateway.CreateSupplier(ctx, sup); err != nil {
		logger.WithCtx(ctx).Warn("store: add supplier", "error", err)
		return false
	}

	s.mu.Lock()
	s.suppliers = append(s.suppliers, *sup)
	s.mu.Unlock()
	return true
}

func (s *Store) UpdateSupplier(ctx context.Context, sup *models.Supplier) bool {
	if err := s.gateway.UpdateSupplier(ctx, sup); err != nil {
		logger.WithCtx(ctx).Warn("store: update supplier", "error", err)
		return false
	}

	s.mu.Lock()
	for i := range s.suppliers {
		if s.suppliers[i].ID == sup.ID {
			s.suppliers[i] = *sup
			break
		}
	}
	s.mu.Unlock()
	return true
}

func (s *Store) DeleteSupplier(ctx context.Context, id primitive.ObjectID) bool {
	if err := s.gateway.DeleteSupplier(ctx, id); err != nil {
		logger.WithCtx(ctx).Warn("store: delete supplier", "error", err)
		return false
	}

	s.mu.Lock()
	s.suppliers = removeByID(s.suppliers, func(sup models.Supplier) primitive.ObjectID { return sup.ID }, id)
	s.mu.Unlock()
	return true
}

// ── Internals ────────────────────────────────────────────────────────────────

func removeByID[T any](items []T, idOf func(T) primitive.ObjectID, id primitive.ObjectID) []T {
	out := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) setLoadingProducts(v bool) {
	s.mu.Lock()
	s.loadingProducts = v
	s.mu.Unlock()
}

func (s *Store) setLoadingCategories(v bool) {
	s.mu.Lock()
	s.loadingCategories = v
	s.mu.Unlock()
}

func (s *Store) setLoadingSuppliers(v bool) {
	s.mu.Lock()
	s.loadingSuppliers = v
	s.mu.Unlock()
}

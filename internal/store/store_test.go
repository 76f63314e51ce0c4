package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/internal/store"
)

var errGateway = errors.New("gateway down")

// fakeGateway serves canned lists and can be told to fail every call.
type fakeGateway struct {
	fail bool

	products   []models.Product
	categories []models.Category
	suppliers  []models.Supplier

	calls []string
}

func (g *fakeGateway) record(name string) error {
	g.calls = append(g.calls, name)
	if g.fail {
		return errGateway
	}
	return nil
}

func (g *fakeGateway) ListProducts(context.Context) ([]models.Product, error) {
	if err := g.record("ListProducts"); err != nil {
		return nil, err
	}
	return g.products, nil
}

func (g *fakeGateway) CreateProduct(_ context.Context, _ *models.Product) error {
	return g.record("CreateProduct")
}

func (g *fakeGateway) UpdateProduct(_ context.Context, _ *models.Product) error {
	return g.record("UpdateProduct")
}

func (g *fakeGateway) DeleteProduct(_ context.Context, _ primitive.ObjectID) error {
	return g.record("DeleteProduct")
}

func (g *fakeGateway) ListCategories(context.Context) ([]models.Category, error) {
	if err := g.record("ListCategories"); err != nil {
		return nil, err
	}
	return g.categories, nil
}

func (g *fakeGateway) CreateCategory(_ context.Context, _ *models.Category) error {
	return g.record("CreateCategory")
}

func (g *fakeGateway) UpdateCategory(_ context.Context, _ *models.Category) error {
	return g.record("UpdateCategory")
}

func (g *fakeGateway) DeleteCategory(_ context.Context, _ primitive.ObjectID) error {
	return g.record("DeleteCategory")
}

func (g *fakeGateway) ListSuppliers(context.Context) ([]models.Supplier, error) {
	if err := g.record("ListSuppliers"); err != nil {
		return nil, err
	}
	return g.suppliers, nil
}

func (g *fakeGateway) CreateSupplier(_ context.Context, _ *models.Supplier) error {
	return g.record("CreateSupplier")
}

func (g *fakeGateway) UpdateSupplier(_ context.Context, _ *models.Supplier) error {
	return g.record("UpdateSupplier")
}

func (g *fakeGateway) DeleteSupplier(_ context.Context, _ primitive.ObjectID) error {
	return g.record("DeleteSupplier")
}

// ─── Loads ───

func TestLoadProductsReplacesCache(t *testing.T) {
	gw := &fakeGateway{products: []models.Product{
		{ID: primitive.NewObjectID(), Name: "Keyboard"},
		{ID: primitive.NewObjectID(), Name: "Mouse"},
	}}
	s := store.New(gw)

	s.LoadProducts(context.Background())

	require.Len(t, s.Products(), 2)
	assert.Equal(t, "Keyboard", s.Products()[0].Name)
	assert.False(t, s.Loading())
}

func TestLoadProductsFailureDegradesToEmpty(t *testing.T) {
	gw := &fakeGateway{products: []models.Product{{Name: "Keyboard"}}}
	s := store.New(gw)

	s.LoadProducts(context.Background())
	require.Len(t, s.Products(), 1)

	gw.fail = true
	s.LoadProducts(context.Background())
	assert.Empty(t, s.Products())
}

func TestLoadCategoriesFailureKeepsCache(t *testing.T) {
	gw := &fakeGateway{categories: []models.Category{{Name: "Electronics"}}}
	s := store.New(gw)

	s.LoadCategories(context.Background())
	require.Len(t, s.Categories(), 1)

	gw.fail = true
	s.LoadCategories(context.Background())
	assert.Len(t, s.Categories(), 1)
}

// ─── Confirmed mutations ───

func TestAddProductTouchesCacheOnlyAfterSuccess(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	p := models.Product{ID: primitive.NewObjectID(), Name: "Keyboard"}
	assert.True(t, s.AddProduct(context.Background(), &p))
	require.Len(t, s.Products(), 1)

	gw.fail = true
	q := models.Product{ID: primitive.NewObjectID(), Name: "Mouse"}
	assert.False(t, s.AddProduct(context.Background(), &q))
	assert.Len(t, s.Products(), 1, "failed create must not touch the cache")
}

func TestUpdateProductReplacesRowByID(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	p := models.Product{ID: primitive.NewObjectID(), Name: "Keyboard", Quantity: 5}
	require.True(t, s.AddProduct(context.Background(), &p))

	p.Quantity = 30
	require.True(t, s.UpdateProduct(context.Background(), &p))

	rows := s.Products()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(30), rows[0].Quantity)
}

func TestUpdateProductFailureLeavesCache(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	p := models.Product{ID: primitive.NewObjectID(), Quantity: 5}
	require.True(t, s.AddProduct(context.Background(), &p))

	gw.fail = true
	changed := p
	changed.Quantity = 99
	assert.False(t, s.UpdateProduct(context.Background(), &changed))
	assert.Equal(t, int64(5), s.Products()[0].Quantity)
}

func TestDeleteProduct(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	keep := models.Product{ID: primitive.NewObjectID(), Name: "Keep"}
	drop := models.Product{ID: primitive.NewObjectID(), Name: "Drop"}
	require.True(t, s.AddProduct(context.Background(), &keep))
	require.True(t, s.AddProduct(context.Background(), &drop))

	assert.True(t, s.DeleteProduct(context.Background(), drop.ID))

	rows := s.Products()
	require.Len(t, rows, 1)
	assert.Equal(t, "Keep", rows[0].Name)
}

func TestDeleteProductFailureLeavesCache(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	p := models.Product{ID: primitive.NewObjectID()}
	require.True(t, s.AddProduct(context.Background(), &p))

	gw.fail = true
	assert.False(t, s.DeleteProduct(context.Background(), p.ID))
	assert.Len(t, s.Products(), 1)
}

func TestCategoryAndSupplierMutations(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	c := models.Category{ID: primitive.NewObjectID(), Name: "Electronics"}
	require.True(t, s.AddCategory(context.Background(), &c))
	c.Name = "Gadgets"
	require.True(t, s.UpdateCategory(context.Background(), &c))
	assert.Equal(t, "Gadgets", s.Categories()[0].Name)
	require.True(t, s.DeleteCategory(context.Background(), c.ID))
	assert.Empty(t, s.Categories())

	sup := models.Supplier{ID: primitive.NewObjectID(), Name: "Acme"}
	require.True(t, s.AddSupplier(context.Background(), &sup))
	require.True(t, s.DeleteSupplier(context.Background(), sup.ID))
	assert.Empty(t, s.Suppliers())
}

// Reads hand out copies; callers cannot corrupt the cache.
func TestReadsReturnCopies(t *testing.T) {
	gw := &fakeGateway{}
	s := store.New(gw)

	p := models.Product{ID: primitive.NewObjectID(), Name: "Keyboard"}
	require.True(t, s.AddProduct(context.Background(), &p))

	rows := s.Products()
	rows[0].Name = "Mutated"
	assert.Equal(t, "Keyboard", s.Products()[0].Name)
}

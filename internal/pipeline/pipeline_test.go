package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/internal/pipeline"
)

var (
	catElectronics = primitive.NewObjectID()
	catFurniture   = primitive.NewObjectID()
	supAcme        = primitive.NewObjectID()
	supGlobex      = primitive.NewObjectID()
)

func fixture() []models.Product {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mk := func(name, sku string, price float64, qty int64, cat, sup primitive.ObjectID, age time.Duration) models.Product {
		return models.Product{
			ID:         primitive.NewObjectID(),
			Name:       name,
			SKU:        sku,
			Price:      price,
			Quantity:   qty,
			Status:     models.DeriveStatus(qty),
			CategoryID: cat,
			SupplierID: sup,
			CreatedAt:  base.Add(age),
		}
	}
	return []models.Product{
		mk("ABC Widget", "SKU-ABC", 25, 25, catElectronics, supAcme, 0),
		mk("Desk Lamp", "SKU-LAMP", 40, 15, catElectronics, supGlobex, time.Hour),
		mk("Office Chair", "ABC-CHAIR", 120, 0, catFurniture, supAcme, 2*time.Hour),
		mk("Bookshelf", "SKU-SHELF", 80, 3, catFurniture, supGlobex, 3*time.Hour),
		mk("Cable Pack", "SKU-CABLE", 8, 50, catElectronics, supAcme, 4*time.Hour),
	}
}

func TestFilterMatchesAllWhenEmpty(t *testing.T) {
	products := fixture()
	got := pipeline.Filter(products, pipeline.Request{})
	assert.Len(t, got, len(products))
}

// Search matches name OR sku, case-insensitively.
func TestFilterSearchNameOrSKU(t *testing.T) {
	got := pipeline.Filter(fixture(), pipeline.Request{Search: "abc"})
	require.Len(t, got, 2)
	assert.Equal(t, "ABC Widget", got[0].Name)
	assert.Equal(t, "Office Chair", got[1].Name)
}

func TestFilterPredicatesAreConjoined(t *testing.T) {
	products := fixture()

	// Category alone matches three.
	byCat := pipeline.Filter(products, pipeline.Request{
		CategoryIDs: []string{catElectronics.Hex()},
	})
	assert.Len(t, byCat, 3)

	// Adding a status narrows, never widens.
	byCatAndStatus := pipeline.Filter(products, pipeline.Request{
		CategoryIDs: []string{catElectronics.Hex()},
		Statuses:    []string{models.StatusAvailable},
	})
	require.Len(t, byCatAndStatus, 2)
	for _, p := range byCatAndStatus {
		assert.Equal(t, catElectronics, p.CategoryID)
		assert.Equal(t, models.StatusAvailable, p.Status)
	}
}

func TestFilterSelectionSetIsOrMembership(t *testing.T) {
	got := pipeline.Filter(fixture(), pipeline.Request{
		Statuses: []string{models.StatusStockOut, models.StatusStockLow},
	})
	assert.Len(t, got, 3)
}

func TestFilterCountNeverExceedsInput(t *testing.T) {
	products := fixture()
	reqs := []pipeline.Request{
		{},
		{Search: "widget"},
		{SupplierIDs: []string{supAcme.Hex()}},
		{Search: "x", Statuses: []string{models.StatusAvailable}},
	}
	for _, req := range reqs {
		assert.LessOrEqual(t, len(pipeline.Filter(products, req)), len(products))
	}
}

func TestApplyIsPureAndIdempotent(t *testing.T) {
	products := fixture()
	req := pipeline.Request{
		Search:   "sku",
		Sort:     pipeline.Sort{Column: pipeline.ByPrice, Desc: true},
		PageSize: 4,
	}

	before := make([]models.Product, len(products))
	copy(before, products)

	first := pipeline.Apply(products, req)
	second := pipeline.Apply(products, req)

	assert.Equal(t, before, products, "input slice must not be mutated")
	assert.Equal(t, first, second, "same inputs must give identical output")
}

func TestApplySortsBeforePaging(t *testing.T) {
	res := pipeline.Apply(fixture(), pipeline.Request{
		Sort:     pipeline.Sort{Column: pipeline.ByPrice},
		Page:     1,
		PageSize: 4,
	})
	// Five products at page size 4: the second page holds the single most
	// expensive one.
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Office Chair", res.Rows[0].Name)
	assert.Equal(t, 5, res.FilteredCount)
	assert.Equal(t, 2, res.TotalPages)
}

func TestApplySortDescending(t *testing.T) {
	res := pipeline.Apply(fixture(), pipeline.Request{
		Sort:     pipeline.Sort{Column: pipeline.ByQuantity, Desc: true},
		PageSize: 10,
	})
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, int64(50), res.Rows[0].Quantity)
	assert.Equal(t, int64(0), res.Rows[len(res.Rows)-1].Quantity)
}

func TestApplyInvalidPageSizeFallsBack(t *testing.T) {
	res := pipeline.Apply(fixture(), pipeline.Request{PageSize: 7})
	assert.Equal(t, 1, res.TotalPages) // 5 rows at default size 10
	assert.Len(t, res.Rows, 5)
}

// Apply never clamps on its own: a page beyond the end yields no rows.
func TestApplyOutOfRangePageIsEmpty(t *testing.T) {
	res := pipeline.Apply(fixture(), pipeline.Request{Page: 9, PageSize: 4})
	assert.Empty(t, res.Rows)
	assert.Equal(t, 5, res.FilteredCount)
}

func TestClampPullsPageIntoRange(t *testing.T) {
	req := pipeline.Request{Page: 9, PageSize: 4}
	req.Clamp(2)
	assert.Equal(t, 1, req.Page)

	req.Page = -3
	req.Clamp(2)
	assert.Equal(t, 0, req.Page)

	req.Page = 7
	req.Clamp(0)
	assert.Equal(t, 0, req.Page)
}

// The "ABC" walkthrough: searching ABC then filtering to Available must
// leave only the products matching both.
func TestSearchThenStatusScenario(t *testing.T) {
	products := fixture()

	searched := pipeline.Filter(products, pipeline.Request{Search: "ABC"})
	require.Len(t, searched, 2)

	narrowed := pipeline.Filter(products, pipeline.Request{
		Search:   "ABC",
		Statuses: []string{models.StatusAvailable},
	})
	require.Len(t, narrowed, 1)
	assert.Equal(t, "ABC Widget", narrowed[0].Name)
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	products := fixture()
	// Give two products the same price; their relative input order must hold.
	products[0].Price = 40
	res := pipeline.Apply(products, pipeline.Request{
		Sort:     pipeline.Sort{Column: pipeline.ByPrice},
		PageSize: 10,
	})

	var names []string
	for _, p := range res.Rows {
		if p.Price == 40 {
			names = append(names, p.Name)
		}
	}
	assert.Equal(t, []string{"ABC Widget", "Desk Lamp"}, names)
}

package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/internal/analytics"
)

func product(name, sku, category string, price float64, qty int64) models.Product {
	return models.Product{
		ID:       primitive.NewObjectID(),
		Name:     name,
		SKU:      sku,
		Category: category,
		Price:    price,
		Quantity: qty,
		Status:   models.DeriveStatus(qty),
	}
}

// ─── Summarize ───

func TestSummarizeEmpty(t *testing.T) {
	s := analytics.Summarize(nil)
	assert.Equal(t, 0, s.TotalProducts)
	assert.Equal(t, 0.0, s.TotalValue)
	assert.Empty(t, s.StatusHistogram)
	assert.Empty(t, s.ReorderSuggestions)
}

func TestSummarizeCounts(t *testing.T) {
	products := []models.Product{
		product("Keyboard", "KB-01", "Electronics", 50, 25), // Available
		product("Mouse", "MS-01", "Electronics", 20, 15),    // Stock Low
		product("Monitor", "MN-01", "Electronics", 200, 0),  // Stock Out
	}
	s := analytics.Summarize(products)

	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 50.0*25+20*15, s.TotalValue)
	assert.Equal(t, int64(40), s.TotalQuantity)
	assert.Equal(t, 0, s.LowStockItems) // 15 and 25 are both >= 10
	assert.Equal(t, 1, s.OutOfStockItems)
}

func TestSummarizeAveragePriceIsQuantityWeighted(t *testing.T) {
	products := []models.Product{
		product("Cheap", "C-01", "Misc", 1, 90),
		product("Dear", "D-01", "Misc", 100, 10),
	}
	s := analytics.Summarize(products)
	// (1*90 + 100*10) / 100 units.
	assert.InDelta(t, 10.9, s.AveragePrice, 0.0001)
}

func TestSummarizeStatusHistogramOrder(t *testing.T) {
	products := []models.Product{
		product("A", "A-01", "X", 1, 0),
		product("B", "B-01", "X", 1, 5),
		product("C", "C-01", "X", 1, 50),
		product("D", "D-01", "X", 1, 50),
	}
	s := analytics.Summarize(products)

	require.Len(t, s.StatusHistogram, 3)
	assert.Equal(t, analytics.NameCount{Name: models.StatusAvailable, Count: 2}, s.StatusHistogram[0])
	assert.Equal(t, analytics.NameCount{Name: models.StatusStockLow, Count: 1}, s.StatusHistogram[1])
	assert.Equal(t, analytics.NameCount{Name: models.StatusStockOut, Count: 1}, s.StatusHistogram[2])
}

func TestSummarizeCategoryHistogramFirstAppearanceOrder(t *testing.T) {
	products := []models.Product{
		product("A", "A-01", "Furniture", 1, 1),
		product("B", "B-01", "Electronics", 1, 1),
		product("C", "C-01", "Furniture", 1, 1),
		product("D", "D-01", "", 1, 1),
	}
	s := analytics.Summarize(products)

	require.Len(t, s.CategoryHistogram, 3)
	assert.Equal(t, analytics.NameCount{Name: "Furniture", Count: 2}, s.CategoryHistogram[0])
	assert.Equal(t, analytics.NameCount{Name: "Electronics", Count: 1}, s.CategoryHistogram[1])
	assert.Equal(t, analytics.NameCount{Name: "Unknown", Count: 1}, s.CategoryHistogram[2])
}

func TestSummarizePriceBands(t *testing.T) {
	products := []models.Product{
		product("A", "A-01", "X", 0, 1),    // $0-$10
		product("B", "B-01", "X", 9.99, 1), // $0-$10
		product("C", "C-01", "X", 10, 1),   // $10-$50
		product("D", "D-01", "X", 99, 1),   // $50-$100
		product("E", "E-01", "X", 100, 1),  // $100-$500
		product("F", "F-01", "X", 500, 1),  // $500+
	}
	s := analytics.Summarize(products)

	require.Len(t, s.PriceBands, 5)
	counts := map[string]int{}
	for _, b := range s.PriceBands {
		counts[b.Name] = b.Count
	}
	assert.Equal(t, 2, counts["$0-$10"])
	assert.Equal(t, 1, counts["$10-$50"])
	assert.Equal(t, 1, counts["$50-$100"])
	assert.Equal(t, 1, counts["$100-$500"])
	assert.Equal(t, 1, counts["$500+"])
}

func TestSummarizeTopProductsByValue(t *testing.T) {
	products := []models.Product{
		product("Small", "S-01", "X", 10, 2),  // value 20
		product("Big", "B-01", "X", 100, 10),  // value 1000
		product("Mid", "M-01", "X", 50, 4),    // value 200
		product("Tiny", "T-01", "X", 1, 1),    // value 1
		product("Large", "L-01", "X", 90, 10), // value 900
		product("Zero", "Z-01", "X", 500, 0),  // value 0
	}
	s := analytics.Summarize(products)

	require.Len(t, s.TopProducts, 5)
	assert.Equal(t, "Big", s.TopProducts[0].Name)
	assert.Equal(t, 1000.0, s.TopProducts[0].Value)
	assert.Equal(t, "Large", s.TopProducts[1].Name)
	assert.Equal(t, "Mid", s.TopProducts[2].Name)
}

func TestSummarizeLowStockProductsSortedByQuantity(t *testing.T) {
	products := []models.Product{
		product("A", "A-01", "X", 1, 9),
		product("B", "B-01", "X", 1, 2),
		product("C", "C-01", "X", 1, 0), // out of stock, not low stock
		product("D", "D-01", "X", 1, 10),
	}
	s := analytics.Summarize(products)

	require.Len(t, s.LowStockProducts, 2)
	assert.Equal(t, "B", s.LowStockProducts[0].Name)
	assert.Equal(t, "A", s.LowStockProducts[1].Name)
}

// ─── Reorder ───

func TestReorderTiers(t *testing.T) {
	products := []models.Product{
		product("Out", "O-01", "X", 1, 0),
		product("Critical", "C-01", "X", 1, 1),
		product("Low", "L-01", "X", 1, 4),
		product("Edge", "E-01", "X", 1, 5),
		product("Fine", "F-01", "X", 1, 6),
	}
	got := analytics.Reorder(products)

	require.Len(t, got, 4)

	assert.Equal(t, int64(30), got[0].SuggestedQuantity)
	assert.Equal(t, analytics.UrgencyHigh, got[0].Urgency)

	assert.Equal(t, int64(25), got[1].SuggestedQuantity)
	assert.Equal(t, analytics.UrgencyHigh, got[1].Urgency)

	assert.Equal(t, int64(20), got[2].SuggestedQuantity)
	assert.Equal(t, analytics.UrgencyMedium, got[2].Urgency)

	assert.Equal(t, int64(20), got[3].SuggestedQuantity)
	assert.Equal(t, analytics.UrgencyMedium, got[3].Urgency)
}

func TestReorderCapsAtFive(t *testing.T) {
	var products []models.Product
	for i := 0; i < 8; i++ {
		products = append(products, product("P", "P-01", "X", 1, 0))
	}
	assert.Len(t, analytics.Reorder(products), 5)
}

func TestReorderCarriesIdentity(t *testing.T) {
	p := product("Widget", "W-01", "X", 1, 2)
	got := analytics.Reorder([]models.Product{p})

	require.Len(t, got, 1)
	assert.Equal(t, p.ID.Hex(), got[0].ProductID)
	assert.Equal(t, "Widget", got[0].Name)
	assert.Equal(t, "W-01", got[0].SKU)
	assert.Equal(t, int64(2), got[0].CurrentQuantity)
}

// Package analytics derives descriptive statistics and heuristic reorder
// suggestions from the full product cache (never the filtered subset).
//
// The reorder thresholds are an intentional heuristic carried over from the
// product requirements, not a statistical forecast; they must not be tuned
// without a product decision.
package analytics

import (
	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/pkg/collection"
)

// Low-stock boundaries. The dashboard's "low stock" card uses a tighter
// threshold than the table's "Stock Low" status on purpose.
const (
	lowStockBelow    = 10
	reorderThreshold = 5
	maxSuggestions   = 5
	maxTopProducts   = 5
)

// Urgency tiers for reorder suggestions.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
)

// NameCount is one histogram bucket.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

// TopProduct is one entry of the top-by-value list.
type TopProduct struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Quantity int64   `json:"quantity"`
}

// Suggestion is a heuristic restock recommendation.
type Suggestion struct {
	ProductID         string `json:"productId"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	CurrentQuantity   int64  `json:"currentQuantity"`
	SuggestedQuantity int64  `json:"suggestedQuantity"`
	Urgency           string `json:"urgency"`
}

// Summary is the full analytics payload for the dashboard.
type Summary struct {
	TotalProducts      int              `json:"totalProducts"`
	TotalValue         float64          `json:"totalValue"`
	TotalQuantity      int64            `json:"totalQuantity"`
	LowStockItems      int              `json:"lowStockItems"`
	OutOfStockItems    int              `json:"outOfStockItems"`
	AveragePrice       float64          `json:"averagePrice"`
	CategoryHistogram  []NameCount      `json:"categoryDistribution"`
	StatusHistogram    []NameCount      `json:"statusDistribution"`
	PriceBands         []NameCount      `json:"priceRangeDistribution"`
	TopProducts        []TopProduct     `json:"topProducts"`
	LowStockProducts   []models.Product `json:"lowStockProducts"`
	ReorderSuggestions []Suggestion     `json:"reorderSuggestions"`
}

// priceBands are half-open [min, max) intervals; the last is unbounded.
var priceBands = []struct {
	label    string
	min, max float64
}{
	{"$0-$10", 0, 10},
	{"$10-$50", 10, 50},
	{"$50-$100", 50, 100},
	{"$100-$500", 100, 500},
	{"$500+", 500, -1},
}

// Summarize computes every aggregate in one pass-friendly shape.
// Pure: the input slice is not mutated.
func Summarize(products []models.Product) Summary {
	s := Summary{
		TotalProducts: len(products),
		TotalValue:    collection.Sum(products, models.Product.Value),
	}
	if len(products) == 0 {
		return s
	}

	for _, p := range products {
		s.TotalQuantity += p.Quantity
	}
	if s.TotalQuantity > 0 {
		// Quantity-weighted: total inventory value over total units.
		s.AveragePrice = s.TotalValue / float64(s.TotalQuantity)
	}

	lowStock := collection.Filter(products, func(p models.Product) bool {
		return p.Quantity > 0 && p.Quantity < lowStockBelow
	})
	s.LowStockItems = len(lowStock)
	s.OutOfStockItems = len(collection.Filter(products, func(p models.Product) bool {
		return p.Quantity == 0
	}))

	s.CategoryHistogram = histogram(collection.CountBy(products, func(p models.Product) string {
		if p.Category == "" {
			return "Unknown"
		}
		return p.Category
	}), categoryOrder(products))
	s.StatusHistogram = histogram(collection.CountBy(products, func(p models.Product) string {
		return p.Status
	}), []string{models.StatusAvailable, models.StatusStockLow, models.StatusStockOut})

	for _, band := range priceBands {
		n := len(collection.Filter(products, func(p models.Product) bool {
			return p.Price >= band.min && (band.max < 0 || p.Price < band.max)
		}))
		s.PriceBands = append(s.PriceBands, NameCount{Name: band.label, Count: n})
	}

	byValue := collection.SortBy(products, func(a, b models.Product) bool {
		return a.Value() > b.Value()
	})
	s.TopProducts = collection.Map(collection.Take(byValue, maxTopProducts),
		func(p models.Product) TopProduct {
			return TopProduct{Name: p.Name, Value: p.Value(), Quantity: p.Quantity}
		})

	s.LowStockProducts = collection.Take(collection.SortBy(lowStock,
		func(a, b models.Product) bool { return a.Quantity < b.Quantity }), maxTopProducts)

	s.ReorderSuggestions = Reorder(products)
	return s
}

// Reorder returns restock suggestions for products at or below the reorder
// threshold, capped at five.
//
// Tiers: quantity 0 → high/30, 1-2 → high/25, 3-5 → medium/20.
func Reorder(products []models.Product) []Suggestion {
	low := collection.Filter(products, func(p models.Product) bool {
		return p.Quantity <= reorderThreshold
	})

	suggestions := collection.Map(collection.Take(low, maxSuggestions),
		func(p models.Product) Suggestion {
			quantity, urgency := reorderFor(p.Quantity)
			return Suggestion{
				ProductID:         p.ID.Hex(),
				Name:              p.Name,
				SKU:               p.SKU,
				CurrentQuantity:   p.Quantity,
				SuggestedQuantity: quantity,
				Urgency:           urgency,
			}
		})
	return suggestions
}

func reorderFor(quantity int64) (suggested int64, urgency string) {
	switch {
	case quantity == 0:
		return 30, UrgencyHigh
	case quantity <= 2:
		return 25, UrgencyHigh
	default:
		return 20, UrgencyMedium
	}
}

// histogram renders a count map in the given label order. Labels outside
// the order are appended at the end; callers pass an order that covers
// every label they produce, so output stays deterministic.
func histogram(counts map[string]int, order []string) []NameCount {
	out := make([]NameCount, 0, len(counts))
	seen := make(map[string]bool, len(order))
	for _, label := range order {
		if n, ok := counts[label]; ok {
			out = append(out, NameCount{Name: label, Count: n})
			seen[label] = true
		}
	}
	for label, n := range counts {
		if !seen[label] {
			out = append(out, NameCount{Name: label, Count: n})
		}
	}
	return out
}

// categoryOrder yields category labels by first appearance so histogram
// output is deterministic for a given cache ordering.
func categoryOrder(products []models.Product) []string {
	var order []string
	seen := make(map[string]bool)
	for _, p := range products {
		label := p.Category
		if label == "" {
			label = "Unknown"
		}
		if !seen[label] {
			seen[label] = true
			order = append(order, label)
		}
	}
	return order
}

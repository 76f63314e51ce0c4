// Package pipeline derives the visible row set of the product table from
// the full product cache: free-text search, multi-select category/status/
// supplier filters, single-column sort, and a page window, applied in that
// order.
//
// Apply is a pure function. Filtering and sorting operate over the full
// matching set; pagination only slices the final window. Running it twice
// on the same inputs yields identical output.
package pipeline

import (
	"strings"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/pkg/collection"
)

// PageSizes is the enumerated set of selectable page sizes.
var PageSizes = []int{4, 6, 8, 10, 15, 20, 30}

// DefaultPageSize is used when the requested size is not one of PageSizes.
const DefaultPageSize = 10

// Sortable columns.
const (
	ByName      = "name"
	BySKU       = "sku"
	ByPrice     = "price"
	ByQuantity  = "quantity"
	ByStatus    = "status"
	ByCreatedAt = "createdAt"
)

// Sort selects a single active sort column. Selecting a new column replaces
// any previous sort; there is no multi-column ordering.
type Sort struct {
	Column string
	Desc   bool
}

// Request is the ephemeral filter/sort/pagination state of one table view.
// Empty selection sets match everything; non-empty sets are OR-membership
// tests. All four predicates are ANDed.
type Request struct {
	Search      string
	CategoryIDs []string
	Statuses    []string
	SupplierIDs []string
	Sort        Sort
	Page        int // zero-based
	PageSize    int
}

// Result is one visible page plus the counts consumers need to render
// pagination controls.
type Result struct {
	Rows          []models.Product
	FilteredCount int
	TotalPages    int
}

// Clamp pulls an out-of-range page index back to the last valid page.
// Apply itself never clamps — a filter change can legitimately leave the
// caller pointing at an empty page — so callers that want the safe
// behavior opt in explicitly.
func (r *Request) Clamp(totalPages int) {
	if totalPages <= 0 {
		r.Page = 0
		return
	}
	if r.Page >= totalPages {
		r.Page = totalPages - 1
	}
	if r.Page < 0 {
		r.Page = 0
	}
}

// Filter returns the full matching set, before any sort or page window.
// This is the row set exports operate on.
func Filter(products []models.Product, req Request) []models.Product {
	search := strings.ToLower(strings.TrimSpace(req.Search))
	categories := toSet(req.CategoryIDs)
	statuses := toSet(req.Statuses)
	suppliers := toSet(req.SupplierIDs)

	return collection.Filter(products, func(p models.Product) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			return false
		}
		if len(categories) > 0 {
			if _, ok := categories[p.CategoryID.Hex()]; !ok {
				return false
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[p.Status]; !ok {
				return false
			}
		}
		if len(suppliers) > 0 {
			if _, ok := suppliers[p.SupplierID.Hex()]; !ok {
				return false
			}
		}
		return true
	})
}

// Apply runs the whole pipeline: filter, then sort, then paginate.
func Apply(products []models.Product, req Request) Result {
	filtered := Filter(products, req)
	sorted := sortRows(filtered, req.Sort)

	size := req.PageSize
	if !validPageSize(size) {
		size = DefaultPageSize
	}

	totalPages := (len(sorted) + size - 1) / size

	return Result{
		Rows:          collection.Page(sorted, req.Page, size),
		FilteredCount: len(sorted),
		TotalPages:    totalPages,
	}
}

func sortRows(products []models.Product, s Sort) []models.Product {
	less := lessFunc(s.Column)
	if less == nil {
		return products
	}
	if s.Desc {
		asc := less
		less = func(a, b models.Product) bool { return asc(b, a) }
	}
	return collection.SortBy(products, less)
}

func lessFunc(column string) func(a, b models.Product) bool {
	switch column {
	case ByName:
		return func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case BySKU:
		return func(a, b models.Product) bool { return a.SKU < b.SKU }
	case ByPrice:
		return func(a, b models.Product) bool { return a.Price < b.Price }
	case ByQuantity:
		return func(a, b models.Product) bool { return a.Quantity < b.Quantity }
	case ByStatus:
		return func(a, b models.Product) bool { return a.Status < b.Status }
	case ByCreatedAt:
		return func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return nil
	}
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out[it] = struct{}{}
		}
	}
	return out
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock status labels. Status is a pure function of quantity; it is stored
// so queries can filter on it, but it is always recomputed at write time and
// never accepted from clients.
const (
	StatusAvailable = "Available"
	StatusStockLow  = "Stock Low"
	StatusStockOut  = "Stock Out"
)

// DeriveStatus maps a quantity onto its stock status label.
// Total over all non-negative quantities: q>20 Available, 0<q<=20 Stock Low,
// q==0 Stock Out.
func DeriveStatus(quantity int64) string {
	switch {
	case quantity > 20:
		return StatusAvailable
	case quantity > 0:
		return StatusStockLow
	default:
		return StatusStockOut
	}
}

// Product is a stocked item owned by a user.
//
// SKU is stored upper-cased and is globally unique across all users,
// enforced by a unique index. Category and Supplier carry the referenced
// names, resolved at read time and not stored; an orphaned reference
// resolves to "Unknown".
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name"          json:"name"`
	SKU        string             `bson:"sku"           json:"sku"`
	Price      float64            `bson:"price"         json:"price"`
	Quantity   int64              `bson:"quantity"      json:"quantity"`
	Status     string             `bson:"status"        json:"status"`
	CategoryID primitive.ObjectID `bson:"categoryId"    json:"categoryId"`
	SupplierID primitive.ObjectID `bson:"supplierId"    json:"supplierId"`
	UserID     primitive.ObjectID `bson:"userId"        json:"userId"`
	CreatedAt  time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"     json:"updatedAt"`

	Category string `bson:"-" json:"category,omitempty"`
	Supplier string `bson:"-" json:"supplier,omitempty"`
}

// Value is the inventory value this product represents.
func (p Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier provides products. Same non-cascading delete semantics as
// Category.
type Supplier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"   json:"id"`
	Name      string             `bson:"name"            json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"          json:"userId"`
	CreatedAt time.Time          `bson:"createdAt"       json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"       json:"updatedAt"`
}

// Package repositories is the persistence gateway: CRUD against the
// products, categories, and suppliers collections, every operation scoped
// to the owning user.
package repositories

import "errors"

var (
	// ErrNotFound is returned when the target id does not exist or is not
	// owned by the caller. Ownership misses are indistinguishable from
	// absence on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrSKUConflict is returned when a product write collides with an
	// existing SKU. Uniqueness is enforced by a unique index, so under
	// concurrent duplicate submissions the first writer wins and the
	// second receives this error.
	ErrSKUConflict = errors.New("sku already exists")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

const (
	usersCollection      = "users"
	productsCollection   = "products"
	categoriesCollection = "categories"
	suppliersCollection  = "suppliers"
)

// unknownName is rendered for orphaned category/supplier references.
const unknownName = "Unknown"

// Package graph defines the read-only GraphQL schema for the inventory:
// products, categories, suppliers, and the analytics summary. Mutations go
// through the REST endpoints only.
package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/internal/analytics"
	"github.com/shashiranjanraj/stockly/pkg/collection"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
)

// Repos bundles the data access the resolvers need.
type Repos struct {
	Products   *repositories.ProductRepository
	Categories *repositories.CategoryRepository
	Suppliers  *repositories.SupplierRepository
}

func currentUser(ctx context.Context) (models.User, error) {
	u, ok := middleware.CurrentUser(ctx)
	if !ok {
		return models.User{}, fmt.Errorf("unauthenticated")
	}
	return u, nil
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).ID.Hex(), nil
			},
		},
		"name":     stringField(func(p models.Product) any { return p.Name }),
		"sku":      stringField(func(p models.Product) any { return p.SKU }),
		"price":    floatField(func(p models.Product) any { return p.Price }),
		"quantity": intField(func(p models.Product) any { return int(p.Quantity) }),
		"status":   stringField(func(p models.Product) any { return p.Status }),
		"category": stringField(func(p models.Product) any { return p.Category }),
		"supplier": stringField(func(p models.Product) any { return p.Supplier }),
		"value":    floatField(func(p models.Product) any { return p.Value() }),
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.DateTime),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).CreatedAt, nil
			},
		},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Category).ID.Hex(), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Category).Name, nil
			},
		},
	},
})

var supplierType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Supplier",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Supplier).ID.Hex(), nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Supplier).Name, nil
			},
		},
	},
})

var nameCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NameCount",
	Fields: graphql.Fields{
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.NameCount).Name, nil
			},
		},
		"count": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.NameCount).Count, nil
			},
		},
	},
})

var summaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Summary",
	Fields: graphql.Fields{
		"totalProducts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).TotalProducts, nil
			},
		},
		"totalValue": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).TotalValue, nil
			},
		},
		"totalQuantity": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(analytics.Summary).TotalQuantity), nil
			},
		},
		"lowStockItems": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).LowStockItems, nil
			},
		},
		"outOfStockItems": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).OutOfStockItems, nil
			},
		},
		"averagePrice": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).AveragePrice, nil
			},
		},
		"statusDistribution": &graphql.Field{
			Type: graphql.NewList(nameCountType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).StatusHistogram, nil
			},
		},
		"categoryDistribution": &graphql.Field{
			Type: graphql.NewList(nameCountType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(analytics.Summary).CategoryHistogram, nil
			},
		},
	},
})

// RootQuery builds the schema root. Every resolver is scoped to the
// authenticated user carried in the request context.
func RootQuery(repos Repos) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := currentUser(p.Context)
					if err != nil {
						return nil, err
					}
					products, err := repos.Products.List(p.Context, user.ID)
					if err != nil {
						return nil, err
					}
					if status, ok := p.Args["status"].(string); ok && status != "" {
						products = collection.Filter(products, func(prod models.Product) bool {
							return prod.Status == status
						})
					}
					if search, ok := p.Args["search"].(string); ok && search != "" {
						needle := strings.ToLower(search)
						products = collection.Filter(products, func(prod models.Product) bool {
							return strings.Contains(strings.ToLower(prod.Name), needle) ||
								strings.Contains(strings.ToLower(prod.SKU), needle)
						})
					}
					return products, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := currentUser(p.Context)
					if err != nil {
						return nil, err
					}
					id, err := primitive.ObjectIDFromHex(p.Args["id"].(string))
					if err != nil {
						return nil, fmt.Errorf("invalid product id")
					}
					product, err := repos.Products.FindByID(p.Context, user.ID, id)
					if err != nil {
						return nil, err
					}
					return product, nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := currentUser(p.Context)
					if err != nil {
						return nil, err
					}
					return repos.Categories.List(p.Context, user.ID)
				},
			},
			"suppliers": &graphql.Field{
				Type: graphql.NewList(supplierType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := currentUser(p.Context)
					if err != nil {
						return nil, err
					}
					return repos.Suppliers.List(p.Context, user.ID)
				},
			},
			"analytics": &graphql.Field{
				Type: summaryType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := currentUser(p.Context)
					if err != nil {
						return nil, err
					}
					products, err := repos.Products.List(p.Context, user.ID)
					if err != nil {
						return nil, err
					}
					return analytics.Summarize(products), nil
				},
			},
		},
	})
}

func stringField(get func(models.Product) any) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.Product)), nil
		},
	}
}

func floatField(get func(models.Product) any) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Float),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.Product)), nil
		},
	}
}

func intField(get func(models.Product) any) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.Product)), nil
		},
	}
}

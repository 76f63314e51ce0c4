// Package routes wires the HTTP surface onto the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/stockly/app/controllers"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/app/services"
	gql "github.com/shashiranjanraj/stockly/internal/graph"
	"github.com/shashiranjanraj/stockly/pkg/graphql"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/metrics"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/response"
	"github.com/shashiranjanraj/stockly/pkg/router"
	"github.com/shashiranjanraj/stockly/pkg/ws"
)

// RegisterAPI mounts every endpoint. Everything except register, login,
// health, and metrics sits behind the session cookie.
func RegisterAPI(r *router.Router) {
	authService := services.NewAuthService()
	inventory := services.NewInventoryService()

	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(inventory)
	categoryController := controllers.NewCategoryController(inventory)
	supplierController := controllers.NewSupplierController(inventory)
	analyticsController := controllers.NewAnalyticsController(inventory)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Post("/auth/register", "auth.register", authController.Register)
	r.Post("/auth/login", "auth.login", authController.Login)
	r.Post("/auth/logout", "auth.logout", authController.Logout)
	r.Post("/auth/refresh", "auth.refresh", authController.Refresh)

	protected := r.Group("", middleware.Auth(authService.Users()))

	protected.Get("/auth/session", "auth.session", authController.Session)

	protected.Get("/products", "products.list", productController.List)
	protected.Post("/products", "products.create", productController.Create)
	protected.Put("/products", "products.update", productController.Update)
	protected.Delete("/products", "products.delete", productController.Delete)
	protected.Post("/products/copy", "products.copy", productController.Copy)
	protected.Get("/products/export", "products.export", productController.Export)

	protected.Get("/categories", "categories.list", categoryController.List)
	protected.Post("/categories", "categories.create", categoryController.Create)
	protected.Put("/categories", "categories.update", categoryController.Update)
	protected.Delete("/categories", "categories.delete", categoryController.Delete)

	protected.Get("/suppliers", "suppliers.list", supplierController.List)
	protected.Post("/suppliers", "suppliers.create", supplierController.Create)
	protected.Put("/suppliers", "suppliers.update", supplierController.Update)
	protected.Delete("/suppliers", "suppliers.delete", supplierController.Delete)

	protected.Get("/analytics", "analytics.summary", analyticsController.Summary)

	schema, err := graphql.NewSchema(gql.RootQuery(gql.Repos{
		Products:   repositories.NewProductRepository(),
		Categories: repositories.NewCategoryRepository(),
		Suppliers:  repositories.NewSupplierRepository(),
	}))
	if err != nil {
		logger.Error("routes: build graphql schema", "error", err)
	} else {
		protected.Post("/graphql", "graphql", graphql.Handler(schema))
	}

	protected.Get("/ws", "ws.inventory", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, ws.InventoryHub)
	})
}

package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/stockly/app/services"
	"github.com/shashiranjanraj/stockly/internal/analytics"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/response"
)

type AnalyticsController struct {
	service *services.InventoryService
}

func NewAnalyticsController(service *services.InventoryService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// Summary aggregates the caller's full product set, never a filtered view.
func (c *AnalyticsController) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	products, err := c.service.ListProducts(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics: list products", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, analytics.Summarize(products))
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/app/services"
	"github.com/shashiranjanraj/stockly/pkg/bind"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/response"
)

type CategoryController struct {
	service *services.InventoryService
}

func NewCategoryController(service *services.InventoryService) *CategoryController {
	return &CategoryController{service: service}
}

type categoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	categories, err := c.service.ListCategories(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("categories: list", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, map[string]any{"categories": categories})
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body categoryRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category := models.Category{Name: strings.TrimSpace(body.Name)}
	if err := c.service.CreateCategory(r.Context(), user.ID, &category); err != nil {
		logger.WithCtx(r.Context()).Error("categories: create", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body categoryRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		response.ValidationError(w, map[string]string{"id": "id must be a valid id"})
		return
	}

	category := models.Category{ID: id, Name: strings.TrimSpace(body.Name)}
	if err := c.service.UpdateCategory(r.Context(), user.ID, &category); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("categories: update", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body idRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		response.ValidationError(w, map[string]string{"id": "id must be a valid id"})
		return
	}

	if err := c.service.DeleteCategory(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("categories: delete", "error", err)
		response.ServerError(w)
		return
	}
	response.NoContent(w)
}

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

type SupplierController struct {
	service *services.InventoryService
}

func NewSupplierController(service *services.InventoryService) *SupplierController {
	return &SupplierController{service: service}
}

type supplierRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"nullable,email"`
	Phone string `json:"phone" validate:"nullable,max=32"`
}

func (c *SupplierController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	suppliers, err := c.service.ListSuppliers(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("suppliers: list", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, map[string]any{"suppliers": suppliers})
}

func (c *SupplierController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body supplierRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	supplier := models.Supplier{Name: strings.TrimSpace(body.Name), Email: body.Email, Phone: body.Phone}
	if err := c.service.CreateSupplier(r.Context(), user.ID, &supplier); err != nil {
		logger.WithCtx(r.Context()).Error("suppliers: create", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, supplier)
}

func (c *SupplierController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body supplierRequest
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

	supplier := models.Supplier{ID: id, Name: strings.TrimSpace(body.Name), Email: body.Email, Phone: body.Phone}
	if err := c.service.UpdateSupplier(r.Context(), user.ID, &supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "supplier not found")
			return
		}
		logger.WithCtx(r.Context()).Error("suppliers: update", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, supplier)
}

func (c *SupplierController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.service.DeleteSupplier(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "supplier not found")
			return
		}
		logger.WithCtx(r.Context()).Error("suppliers: delete", "error", err)
		response.ServerError(w)
		return
	}
	response.NoContent(w)
}

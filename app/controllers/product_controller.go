package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/app/services"
	"github.com/shashiranjanraj/stockly/internal/export"
	"github.com/shashiranjanraj/stockly/internal/pipeline"
	"github.com/shashiranjanraj/stockly/pkg/bind"
	"github.com/shashiranjanraj/stockly/pkg/collection"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/metrics"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/response"
	"github.com/shashiranjanraj/stockly/pkg/storage"
)

// skuConflictMessage is the distinct 400-level message for duplicate SKUs;
// it is deliberately not a 409.
const skuConflictMessage = "SKU must be unique"

type ProductController struct {
	service *services.InventoryService
}

func NewProductController(service *services.InventoryService) *ProductController {
	return &ProductController{service: service}
}

// pipelineRequest reads the table-view query params. The page param is
// one-based on the wire; the pipeline is zero-based internally.
func pipelineRequest(r *http.Request) pipeline.Request {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	return pipeline.Request{
		Search:      q.Get("search"),
		CategoryIDs: splitParam(q.Get("category")),
		Statuses:    splitParam(q.Get("status")),
		SupplierIDs: splitParam(q.Get("supplier")),
		Sort: pipeline.Sort{
			Column: q.Get("sort"),
			Desc:   q.Get("order") == "desc",
		},
		Page:     page - 1,
		PageSize: pageSize,
	}
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// List serves the filtered, sorted, paginated table view. An out-of-range
// page is clamped to the last valid one before slicing.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	products, err := c.service.ListProducts(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("products: list", "error", err)
		response.ServerError(w)
		return
	}

	req := pipelineRequest(r)
	filtered := pipeline.Filter(products, req)

	size := req.PageSize
	if !collection.Contains(pipeline.PageSizes, func(n int) bool { return n == size }) {
		size = pipeline.DefaultPageSize
	}
	totalPages := (len(filtered) + size - 1) / size
	req.Clamp(totalPages)

	result := pipeline.Apply(products, req)
	response.Success(w, map[string]any{
		"products":      result.Rows,
		"filteredCount": result.FilteredCount,
		"totalPages":    result.TotalPages,
		"page":          req.Page + 1,
		"pageSize":      size,
	})
}

type productRequest struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"       validate:"required,min=1,max=200"`
	SKU        string  `json:"sku"        validate:"required,min=1,max=64"`
	Price      float64 `json:"price"      validate:"gte=0"`
	Quantity   int64   `json:"quantity"   validate:"gte=0"`
	CategoryID string  `json:"categoryId" validate:"required"`
	SupplierID string  `json:"supplierId" validate:"required"`
}

func (b productRequest) toModel() (models.Product, map[string]string) {
	errs := map[string]string{}

	categoryID, err := primitive.ObjectIDFromHex(b.CategoryID)
	if err != nil {
		errs["categoryId"] = "categoryId must be a valid id"
	}
	supplierID, err := primitive.ObjectIDFromHex(b.SupplierID)
	if err != nil {
		errs["supplierId"] = "supplierId must be a valid id"
	}
	if len(errs) > 0 {
		return models.Product{}, errs
	}

	return models.Product{
		Name:       strings.TrimSpace(b.Name),
		SKU:        b.SKU,
		Price:      b.Price,
		Quantity:   b.Quantity,
		CategoryID: categoryID,
		SupplierID: supplierID,
	}, nil
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body productRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, errs := body.toModel()
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.CreateProduct(r.Context(), user.ID, &product); err != nil {
		if errors.Is(err, repositories.ErrSKUConflict) {
			response.Error(w, http.StatusBadRequest, skuConflictMessage)
			return
		}
		logger.WithCtx(r.Context()).Error("products: create", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body productRequest
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

	product, errs := body.toModel()
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}
	product.ID = id

	if err := c.service.UpdateProduct(r.Context(), user.ID, &product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			response.NotFound(w, "product not found")
		case errors.Is(err, repositories.ErrSKUConflict):
			response.Error(w, http.StatusBadRequest, skuConflictMessage)
		default:
			logger.WithCtx(r.Context()).Error("products: update", "error", err)
			response.ServerError(w)
		}
		return
	}
	response.Success(w, product)
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.service.DeleteProduct(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("products: delete", "error", err)
		response.ServerError(w)
		return
	}
	response.NoContent(w)
}

// Copy clones an existing product with a fresh SKU.
func (c *ProductController) Copy(w http.ResponseWriter, r *http.Request) {
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

	clone, err := c.service.CopyProduct(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			response.NotFound(w, "product not found")
		case errors.Is(err, repositories.ErrSKUConflict):
			response.Error(w, http.StatusBadRequest, skuConflictMessage)
		default:
			logger.WithCtx(r.Context()).Error("products: copy", "error", err)
			response.ServerError(w)
		}
		return
	}
	response.Created(w, clone)
}

// Export serves the filtered (never paginated) set as a CSV or XLSX
// download, then archives a copy to the configured storage disk. Archive
// failures are logged and never fail the download.
func (c *ProductController) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		response.Error(w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	products, err := c.service.ListProducts(r.Context(), user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("products: export list", "error", err)
		metrics.RecordExport(format, "failed")
		response.ServerError(w)
		return
	}
	filtered := pipeline.Filter(products, pipelineRequest(r))

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = export.CSV(&buf, filtered)
	case "xlsx":
		err = export.XLSX(&buf, filtered)
	}
	if err != nil {
		if errors.Is(err, export.ErrNoRows) {
			metrics.RecordExport(format, "empty")
			response.Error(w, http.StatusBadRequest, "no products match the current filters")
			return
		}
		logger.WithCtx(r.Context()).Error("products: export", "format", format, "error", err)
		metrics.RecordExport(format, "failed")
		response.ServerError(w)
		return
	}

	filename := export.Filename(format, time.Now())
	if err := storage.Put("exports/"+filename, buf.Bytes()); err != nil {
		logger.WithCtx(r.Context()).Warn("products: export archive", "file", filename, "error", err)
	}
	metrics.RecordExport(format, "success")

	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

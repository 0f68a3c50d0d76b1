package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zeel68/YouliteBackend/internal/repository"
	"github.com/zeel68/YouliteBackend/internal/service"
	"github.com/zeel68/YouliteBackend/pkg/httputil"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
	"github.com/zeel68/YouliteBackend/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	ComparePrice int64    `json:"compare_price" validate:"omitempty,gte=0"`
	StockQty     int      `json:"stock_quantity" validate:"gte=0"`
	ImageURLs    []string `json:"image_urls" validate:"omitempty,dive,url"`
	TagIDs       []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Price        *int64   `json:"price" validate:"omitempty,gt=0"`
	ComparePrice *int64   `json:"compare_price" validate:"omitempty,gte=0"`
	StockQty     *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	ImageURLs    []string `json:"image_urls" validate:"omitempty,dive,url"`
	TagIDs       []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
	IsActive     *bool    `json:"is_active"`
}

// Create handles POST /api/v1/stores/{storeID}/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), storeID, service.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		StockQty:     req.StockQty,
		ImageURLs:    req.ImageURLs,
		TagIDs:       req.TagIDs,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// List handles GET /api/v1/stores/{storeID}/products with search, tag, price
// range, and pagination query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	h.list(w, r, storeID)
}

// ListAll handles GET /api/v1/admin/products across all stores.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, storeID string) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Search:     q.Get("search"),
		TagID:      q.Get("tag_id"),
		ActiveOnly: q.Get("include_inactive") != "true",
	}
	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		filter.MaxPrice = v
	}

	result, err := h.service.ListProducts(r.Context(), storeID, filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /api/v1/stores/{storeID}/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Update handles PUT /api/v1/stores/{storeID}/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, service.UpdateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		StockQty:     req.StockQty,
		ImageURLs:    req.ImageURLs,
		TagIDs:       req.TagIDs,
		IsActive:     req.IsActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Delete handles DELETE /api/v1/stores/{storeID}/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"id": id, "status": "deleted"},
	})
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/service"
	"github.com/zeel68/YouliteBackend/pkg/httputil"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
	"github.com/zeel68/YouliteBackend/pkg/validator"
)

// StoreHandler handles HTTP requests for store endpoints.
type StoreHandler struct {
	service *service.StoreService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(svc *service.StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{service: svc, logger: logger}
}

// CreateStoreRequest is the JSON request body for creating a store.
type CreateStoreRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Domain     string `json:"domain" validate:"required,hostname"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

// UpdateStoreRequest is the JSON request body for updating a store.
type UpdateStoreRequest struct {
	Name       *string                 `json:"name" validate:"omitempty,min=1,max=200"`
	Domain     *string                 `json:"domain" validate:"omitempty,hostname"`
	CategoryID *string                 `json:"category_id" validate:"omitempty,uuid"`
	IsActive   *bool                   `json:"is_active"`
	Features   []string                `json:"features"`
	Attributes []domain.StoreAttribute `json:"attributes"`
	Theme      *domain.StoreTheme      `json:"theme"`
}

// Create handles POST /api/v1/stores
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
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

	store, err := h.service.CreateStore(r.Context(), service.CreateStoreInput{
		Name:       req.Name,
		Domain:     req.Domain,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: store})
}

// List handles GET /api/v1/stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListStores(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /api/v1/stores/{storeID}
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	store, err := h.service.GetStore(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}

// GetByDomain handles GET /api/v1/stores/domain/{domain}. Storefronts resolve
// their tenant from the request hostname with this.
func (h *StoreHandler) GetByDomain(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.GetStoreByDomain(r.Context(), chi.URLParam(r, "domain"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}

// Update handles PUT /api/v1/stores/{storeID}
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	var req UpdateStoreRequest
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

	store, err := h.service.UpdateStore(r.Context(), id, service.UpdateStoreInput{
		Name:       req.Name,
		Domain:     req.Domain,
		CategoryID: req.CategoryID,
		IsActive:   req.IsActive,
		Features:   req.Features,
		Attributes: req.Attributes,
		Theme:      req.Theme,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}

// GetConfig handles GET /api/v1/stores/{storeID}/config
func (h *StoreHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	store, err := h.service.GetStore(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store.Config})
}

// UpdateConfig handles PUT /api/v1/stores/{storeID}/config
func (h *StoreHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	var cfg domain.StoreConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	store, err := h.service.UpdateStoreConfig(r.Context(), id, cfg)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store.Config})
}

// Delete handles DELETE /api/v1/stores/{storeID}
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	if err := h.service.DeleteStore(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"id": id, "status": "deleted"},
	})
}

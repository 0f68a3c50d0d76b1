package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zeel68/YouliteBackend/internal/service"
	"github.com/zeel68/YouliteBackend/pkg/httputil"
)

// AnalyticsHandler handles HTTP requests for store analytics endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics HTTP handler.
func NewAnalyticsHandler(svc *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, logger: logger}
}

// TotalSales handles GET /api/v1/stores/{storeID}/analytics/sales?start=&end=
// with RFC 3339 timestamps. Omitted bounds mean all-time.
func (h *AnalyticsHandler) TotalSales(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	var start, end time.Time
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "start must be RFC 3339"},
			})
			return
		}
		start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "end must be RFC 3339"},
			})
			return
		}
		end = t
	}

	total, err := h.service.TotalSales(r.Context(), storeID, start, end)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: total})
}

// SalesTrend handles GET /api/v1/stores/{storeID}/analytics/sales-trend?days=
func (h *AnalyticsHandler) SalesTrend(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	points, err := h.service.SalesTrend(r.Context(), chi.URLParam(r, "storeID"), days)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: points})
}

// TopProducts handles GET /api/v1/stores/{storeID}/analytics/top-products?limit=
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.service.TopProducts(r.Context(), chi.URLParam(r, "storeID"), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// UserGrowth handles GET /api/v1/admin/analytics/user-growth?days=
func (h *AnalyticsHandler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	points, err := h.service.UserGrowth(r.Context(), days)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: points})
}

// InventoryStatus handles GET /api/v1/stores/{storeID}/analytics/inventory
func (h *AnalyticsHandler) InventoryStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.InventoryStatus(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: status})
}

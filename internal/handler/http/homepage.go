package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/service"
	"github.com/zeel68/YouliteBackend/pkg/httputil"
	"github.com/zeel68/YouliteBackend/pkg/validator"
)

// HomepageHandler handles HTTP requests for storefront homepage content.
type HomepageHandler struct {
	service *service.HomepageService
	logger  *slog.Logger
}

// NewHomepageHandler creates a new homepage HTTP handler.
func NewHomepageHandler(svc *service.HomepageService, logger *slog.Logger) *HomepageHandler {
	return &HomepageHandler{service: svc, logger: logger}
}

// HeroRequest is the JSON request body for updating the hero section.
type HeroRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=500"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	CTAText  string `json:"cta_text" validate:"omitempty,max=100"`
	CTALink  string `json:"cta_link" validate:"omitempty,max=500"`
}

// TestimonialRequest is the JSON request body for adding a testimonial.
type TestimonialRequest struct {
	Author    string `json:"author" validate:"required,min=1,max=100"`
	Quote     string `json:"quote" validate:"required,min=1,max=2000"`
	Rating    int    `json:"rating" validate:"gte=0,lte=5"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// GetContent handles GET /api/v1/stores/{storeID}/homepage. Public; this is
// everything a storefront needs to render its landing page.
func (h *HomepageHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	content, err := h.service.GetContent(r.Context(), storeID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: content})
}

// UpdateHero handles PUT /api/v1/stores/{storeID}/homepage/hero
func (h *HomepageHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var req HeroRequest
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

	hero, err := h.service.UpdateHero(r.Context(), &domain.HeroSection{
		StoreID:  storeID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		CTAText:  req.CTAText,
		CTALink:  req.CTALink,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: hero})
}

// ReplaceSlides handles PUT /api/v1/stores/{storeID}/homepage/slides
func (h *HomepageHandler) ReplaceSlides(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var slides []domain.HeroSlide
	if err := json.NewDecoder(r.Body).Decode(&slides); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	saved, err := h.service.ReplaceSlides(r.Context(), storeID, slides)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: saved})
}

// ReplaceTrendingCategories handles PUT /api/v1/stores/{storeID}/homepage/trending-categories
func (h *HomepageHandler) ReplaceTrendingCategories(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var items []domain.TrendingCategory
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	saved, err := h.service.ReplaceTrendingCategories(r.Context(), storeID, items)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: saved})
}

// ReplaceTrendingProducts handles PUT /api/v1/stores/{storeID}/homepage/trending-products
func (h *HomepageHandler) ReplaceTrendingProducts(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var items []domain.TrendingProduct
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	saved, err := h.service.ReplaceTrendingProducts(r.Context(), storeID, items)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: saved})
}

// AddTestimonial handles POST /api/v1/stores/{storeID}/homepage/testimonials
func (h *HomepageHandler) AddTestimonial(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	var req TestimonialRequest
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

	testimonial, err := h.service.AddTestimonial(r.Context(), &domain.Testimonial{
		StoreID:   storeID,
		Author:    req.Author,
		Quote:     req.Quote,
		Rating:    req.Rating,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: testimonial})
}

// DeleteTestimonial handles DELETE /api/v1/stores/{storeID}/homepage/testimonials/{id}
func (h *HomepageHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := httputil.ParseUUID(w, id); !ok {
		return
	}

	if err := h.service.DeleteTestimonial(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"id": id, "status": "deleted"},
	})
}

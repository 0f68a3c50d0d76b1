package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// HomepageService implements the business logic for storefront homepage
// content.
type HomepageService struct {
	homepageRepo repository.HomepageRepository
	logger       *slog.Logger
}

// NewHomepageService creates a new homepage service.
func NewHomepageService(homepageRepo repository.HomepageRepository, logger *slog.Logger) *HomepageService {
	return &HomepageService{
		homepageRepo: homepageRepo,
		logger:       logger,
	}
}

// GetContent aggregates everything needed to render a store's homepage. A
// missing hero section is not an error; the field stays nil.
func (s *HomepageService) GetContent(ctx context.Context, storeID string) (*domain.HomepageContent, error) {
	hero, err := s.homepageRepo.GetHero(ctx, storeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get hero section: %w", err)
	}

	slides, err := s.homepageRepo.ListSlides(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list hero slides: %w", err)
	}

	categories, err := s.homepageRepo.ListTrendingCategories(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list trending categories: %w", err)
	}

	products, err := s.homepageRepo.ListTrendingProducts(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list trending products: %w", err)
	}

	testimonials, err := s.homepageRepo.ListTestimonials(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	content := &domain.HomepageContent{
		Hero:               hero,
		Slides:             slides,
		TrendingCategories: categories,
		TrendingProducts:   products,
		Testimonials:       testimonials,
	}

	// Empty slices serialize as [] instead of null.
	if content.Slides == nil {
		content.Slides = []domain.HeroSlide{}
	}
	if content.TrendingCategories == nil {
		content.TrendingCategories = []domain.TrendingCategory{}
	}
	if content.TrendingProducts == nil {
		content.TrendingProducts = []domain.TrendingProduct{}
	}
	if content.Testimonials == nil {
		content.Testimonials = []domain.Testimonial{}
	}

	return content, nil
}

// UpdateHero creates or replaces the store's hero section.
func (s *HomepageService) UpdateHero(ctx context.Context, hero *domain.HeroSection) (*domain.HeroSection, error) {
	if hero.Title == "" {
		return nil, apperrors.InvalidInput("hero title is required")
	}
	if hero.ID == "" {
		hero.ID = uuid.New().String()
	}

	if err := s.homepageRepo.UpsertHero(ctx, hero); err != nil {
		return nil, fmt.Errorf("upsert hero: %w", err)
	}

	s.logger.InfoContext(ctx, "hero section updated",
		slog.String("store_id", hero.StoreID),
	)

	return hero, nil
}

// ReplaceSlides swaps the store's hero slide set.
func (s *HomepageService) ReplaceSlides(ctx context.Context, storeID string, slides []domain.HeroSlide) ([]domain.HeroSlide, error) {
	now := time.Now().UTC()
	for i := range slides {
		if slides[i].ImageURL == "" {
			return nil, apperrors.InvalidInput("slide image URL is required")
		}
		slides[i].ID = uuid.New().String()
		slides[i].StoreID = storeID
		slides[i].CreatedAt = now
	}

	if err := s.homepageRepo.ReplaceSlides(ctx, storeID, slides); err != nil {
		return nil, fmt.Errorf("replace slides: %w", err)
	}

	s.logger.InfoContext(ctx, "hero slides replaced",
		slog.String("store_id", storeID),
		slog.Int("count", len(slides)),
	)

	return slides, nil
}

// ReplaceTrendingCategories swaps the store's pinned category set.
func (s *HomepageService) ReplaceTrendingCategories(ctx context.Context, storeID string, items []domain.TrendingCategory) ([]domain.TrendingCategory, error) {
	for i := range items {
		if items[i].CategoryID == "" {
			return nil, apperrors.InvalidInput("category_id is required")
		}
		items[i].ID = uuid.New().String()
		items[i].StoreID = storeID
	}

	if err := s.homepageRepo.ReplaceTrendingCategories(ctx, storeID, items); err != nil {
		return nil, fmt.Errorf("replace trending categories: %w", err)
	}

	return items, nil
}

// ReplaceTrendingProducts swaps the store's pinned product set.
func (s *HomepageService) ReplaceTrendingProducts(ctx context.Context, storeID string, items []domain.TrendingProduct) ([]domain.TrendingProduct, error) {
	for i := range items {
		if items[i].ProductID == "" {
			return nil, apperrors.InvalidInput("product_id is required")
		}
		items[i].ID = uuid.New().String()
		items[i].StoreID = storeID
	}

	if err := s.homepageRepo.ReplaceTrendingProducts(ctx, storeID, items); err != nil {
		return nil, fmt.Errorf("replace trending products: %w", err)
	}

	return items, nil
}

// AddTestimonial inserts a testimonial for the store.
func (s *HomepageService) AddTestimonial(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	if t.Author == "" || t.Quote == "" {
		return nil, apperrors.InvalidInput("author and quote are required")
	}
	if t.Rating < 0 || t.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 0 and 5")
	}

	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	if err := s.homepageRepo.AddTestimonial(ctx, t); err != nil {
		return nil, fmt.Errorf("add testimonial: %w", err)
	}

	return t, nil
}

// DeleteTestimonial removes a testimonial.
func (s *HomepageService) DeleteTestimonial(ctx context.Context, id string) error {
	if err := s.homepageRepo.DeleteTestimonial(ctx, id); err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}

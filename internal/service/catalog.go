package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/slug"
)

// CatalogService implements the business logic for platform categories and
// their tags.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	logger       *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		logger:       logger,
	}
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name        string
	ImageURL    string
	Description string
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	Name        *string
	ImageURL    *string
	Description *string
	IsActive    *bool
}

// CreateCategory creates a new category with a generated slug.
func (s *CatalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		ImageURL:    input.ImageURL,
		Description: input.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// GetCategory retrieves a category by ID.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// ListCategories returns categories, optionally narrowed by a name search.
func (s *CatalogService) ListCategories(ctx context.Context, search string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates category fields. Renaming regenerates the slug.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("category name must not be empty")
		}
		category.Name = *input.Name
		category.Slug = slug.Generate(*input.Name)
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID),
	)

	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
	)

	return nil
}

// CreateTag creates a tag under a category.
func (s *CatalogService) CreateTag(ctx context.Context, name, categoryID string) (*domain.Tag, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("tag name is required")
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, apperrors.InvalidInput("unknown category")
	}

	now := time.Now().UTC()
	tag := &domain.Tag{
		ID:         uuid.New().String(),
		Name:       name,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.InfoContext(ctx, "tag created",
		slog.String("tag_id", tag.ID),
		slog.String("category_id", categoryID),
	)

	return tag, nil
}

// ListTags returns all tags under a category.
func (s *CatalogService) ListTags(ctx context.Context, categoryID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag renames a tag.
func (s *CatalogService) UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("tag name is required")
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag for update: %w", err)
	}

	tag.Name = name
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}

	return tag, nil
}

// DeleteTag removes a tag.
func (s *CatalogService) DeleteTag(ctx context.Context, id string) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	return nil
}

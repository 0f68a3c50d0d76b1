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
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// StoreService implements the business logic for tenant store management.
type StoreService struct {
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	logger *slog.Logger,
) *StoreService {
	return &StoreService{
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateStoreInput holds the parameters for creating a store.
type CreateStoreInput struct {
	Name       string
	Domain     string
	CategoryID string
}

// UpdateStoreInput holds the parameters for updating a store.
type UpdateStoreInput struct {
	Name       *string
	Domain     *string
	CategoryID *string
	IsActive   *bool
	Features   []string
	Attributes []domain.StoreAttribute
	Theme      *domain.StoreTheme
}

// CreateStore creates a new store with default config and theme.
func (s *StoreService) CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("store name is required")
	}
	if input.Domain == "" {
		return nil, apperrors.InvalidInput("store domain is required")
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, apperrors.InvalidInput("unknown category")
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Domain:     input.Domain,
		CategoryID: input.CategoryID,
		Config:     domain.DefaultStoreConfig(),
		Theme:      domain.DefaultStoreTheme(),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.InfoContext(ctx, "store created",
		slog.String("store_id", store.ID),
		slog.String("domain", store.Domain),
	)

	return store, nil
}

// GetStore retrieves a store by ID.
func (s *StoreService) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

// GetStoreByDomain resolves a tenant from its domain name.
func (s *StoreService) GetStoreByDomain(ctx context.Context, storeDomain string) (*domain.Store, error) {
	store, err := s.storeRepo.GetByDomain(ctx, storeDomain)
	if err != nil {
		return nil, fmt.Errorf("get store by domain: %w", err)
	}
	return store, nil
}

// ListStores returns stores page by page.
func (s *StoreService) ListStores(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Store], error) {
	stores, total, err := s.storeRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return pagination.NewResult(stores, total, params), nil
}

// UpdateStore updates store fields.
func (s *StoreService) UpdateStore(ctx context.Context, id string, input UpdateStoreInput) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("store name must not be empty")
		}
		store.Name = *input.Name
	}
	if input.Domain != nil {
		if *input.Domain == "" {
			return nil, apperrors.InvalidInput("store domain must not be empty")
		}
		store.Domain = *input.Domain
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, apperrors.InvalidInput("unknown category")
		}
		store.CategoryID = *input.CategoryID
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}
	if input.Features != nil {
		store.Features = input.Features
	}
	if input.Attributes != nil {
		store.Attributes = input.Attributes
	}
	if input.Theme != nil {
		store.Theme = *input.Theme
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}

	s.logger.InfoContext(ctx, "store updated",
		slog.String("store_id", store.ID),
	)

	return store, nil
}

// UpdateStoreConfig replaces the store's config, stamping the current schema
// version.
func (s *StoreService) UpdateStoreConfig(ctx context.Context, id string, cfg domain.StoreConfig) (*domain.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get store for config update: %w", err)
	}

	cfg.Version = domain.StoreConfigVersion
	if cfg.Currency == "" {
		cfg.Currency = store.Config.Currency
	}
	if cfg.Timezone == "" {
		cfg.Timezone = store.Config.Timezone
	}

	if err := s.storeRepo.UpdateConfig(ctx, id, cfg); err != nil {
		return nil, fmt.Errorf("update store config: %w", err)
	}

	store.Config = cfg

	s.logger.InfoContext(ctx, "store config updated",
		slog.String("store_id", store.ID),
	)

	return store, nil
}

// DeleteStore removes a store.
func (s *StoreService) DeleteStore(ctx context.Context, id string) error {
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	s.logger.InfoContext(ctx, "store deleted",
		slog.String("store_id", id),
	)

	return nil
}

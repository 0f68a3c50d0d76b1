package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// StoreRepository implements repository.StoreRepository using PostgreSQL.
// Config, theme, features, and attributes are JSONB documents on the stores
// row; none of them is queried relationally.
type StoreRepository struct {
	db DB
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(db DB) *StoreRepository {
	return &StoreRepository{db: db}
}

const storeColumns = `id, name, domain, category_id, config, theme, features, attributes, is_active, created_at, updated_at`

// Create inserts a new store.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) error {
	config, theme, features, attributes, err := marshalStoreDocs(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO stores (id, name, domain, category_id, config, theme, features, attributes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Domain,
		s.CategoryID,
		config,
		theme,
		features,
		attributes,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("store", "domain", s.Domain)
		}
		return fmt.Errorf("insert store: %w", err)
	}

	return nil
}

// GetByID retrieves a store by its ID.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	return r.scanStore(ctx, query, id)
}

// GetByDomain retrieves a store by its domain name.
func (r *StoreRepository) GetByDomain(ctx context.Context, storeDomain string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE domain = $1`

	return r.scanStore(ctx, query, storeDomain)
}

// List returns stores page by page, newest first.
func (r *StoreRepository) List(ctx context.Context, params pagination.Params) ([]domain.Store, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStoreRow(rows)
		if err != nil {
			return nil, 0, err
		}
		stores = append(stores, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate stores: %w", err)
	}

	return stores, total, nil
}

// Update modifies an existing store.
func (r *StoreRepository) Update(ctx context.Context, s *domain.Store) error {
	s.UpdatedAt = time.Now().UTC()

	config, theme, features, attributes, err := marshalStoreDocs(s)
	if err != nil {
		return err
	}

	query := `
		UPDATE stores
		SET name = $1, domain = $2, category_id = $3, config = $4, theme = $5,
		    features = $6, attributes = $7, is_active = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.db.Exec(ctx, query,
		s.Name,
		s.Domain,
		s.CategoryID,
		config,
		theme,
		features,
		attributes,
		s.IsActive,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("store", "domain", s.Domain)
		}
		return fmt.Errorf("update store: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("store", s.ID)
	}

	return nil
}

// UpdateConfig replaces the store's config document.
func (r *StoreRepository) UpdateConfig(ctx context.Context, storeID string, cfg domain.StoreConfig) error {
	config, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal store config: %w", err)
	}

	ct, err := r.db.Exec(ctx,
		`UPDATE stores SET config = $1, updated_at = $2 WHERE id = $3`,
		config, time.Now().UTC(), storeID,
	)
	if err != nil {
		return fmt.Errorf("update store config: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("store", storeID)
	}

	return nil
}

// Delete removes a store by its ID.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("store", id)
	}

	return nil
}

func (r *StoreRepository) scanStore(ctx context.Context, query string, args ...any) (*domain.Store, error) {
	return scanStoreRow(r.db.QueryRow(ctx, query, args...))
}

func scanStoreRow(row rowScanner) (*domain.Store, error) {
	var (
		s          domain.Store
		config     []byte
		theme      []byte
		features   []byte
		attributes []byte
	)

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Domain,
		&s.CategoryID,
		&config,
		&theme,
		&features,
		&attributes,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}

	if err := json.Unmarshal(config, &s.Config); err != nil {
		return nil, fmt.Errorf("unmarshal store config: %w", err)
	}
	s.Config = s.Config.Upgrade()
	if err := json.Unmarshal(theme, &s.Theme); err != nil {
		return nil, fmt.Errorf("unmarshal store theme: %w", err)
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &s.Features); err != nil {
			return nil, fmt.Errorf("unmarshal store features: %w", err)
		}
	}
	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &s.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshal store attributes: %w", err)
		}
	}

	return &s, nil
}

func marshalStoreDocs(s *domain.Store) (config, theme, features, attributes []byte, err error) {
	if config, err = json.Marshal(s.Config); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal store config: %w", err)
	}
	if theme, err = json.Marshal(s.Theme); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal store theme: %w", err)
	}
	if features, err = json.Marshal(s.Features); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal store features: %w", err)
	}
	if attributes, err = json.Marshal(s.Attributes); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal store attributes: %w", err)
	}
	return config, theme, features, attributes, nil
}

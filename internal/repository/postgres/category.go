package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db DB
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, slug, image_url, description, is_active, created_at, updated_at`

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, image_url, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.ImageURL, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "slug", c.Slug)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	return r.scanCategory(ctx, query, id)
}

// GetBySlug retrieves a category by its slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	return r.scanCategory(ctx, query, slug)
}

// List returns categories ordered by name, optionally narrowed by a name
// match.
func (r *CategoryRepository) List(ctx context.Context, search string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ($1 = '' OR name ILIKE '%' || $1 || '%') ORDER BY name`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategoryRow(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// Update modifies an existing category.
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE categories
		SET name = $1, slug = $2, image_url = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $7`

	ct, err := r.db.Exec(ctx, query,
		c.Name, c.Slug, c.ImageURL, c.Description, c.IsActive, c.UpdatedAt, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "slug", c.Slug)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID)
	}

	return nil
}

// Delete removes a category by its ID.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", id)
	}

	return nil
}

func (r *CategoryRepository) scanCategory(ctx context.Context, query string, args ...any) (*domain.Category, error) {
	return scanCategoryRow(r.db.QueryRow(ctx, query, args...))
}

func scanCategoryRow(row rowScanner) (*domain.Category, error) {
	var c domain.Category

	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	return &c, nil
}

// --- Tag Repository ---

// TagRepository implements repository.TagRepository using PostgreSQL.
type TagRepository struct {
	db DB
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(db DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `
		INSERT INTO tags (id, name, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, t.ID, t.Name, t.CategoryID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("tag", "name", t.Name)
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by its ID.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var t domain.Tag

	err := r.db.QueryRow(ctx,
		`SELECT id, name, category_id, created_at, updated_at FROM tags WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}

	return &t, nil
}

// ListByCategory returns all tags under the given category.
func (r *TagRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category_id, created_at, updated_at FROM tags WHERE category_id = $1 ORDER BY name`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// Update modifies an existing tag.
func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) error {
	t.UpdatedAt = time.Now().UTC()

	ct, err := r.db.Exec(ctx,
		`UPDATE tags SET name = $1, category_id = $2, updated_at = $3 WHERE id = $4`,
		t.Name, t.CategoryID, t.UpdatedAt, t.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("tag", "name", t.Name)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("tag", t.ID)
	}

	return nil
}

// Delete removes a tag by its ID.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("tag", id)
	}

	return nil
}

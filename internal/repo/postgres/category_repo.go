package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) Create(ctx context.Context, name string) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(name) == "" {
		return model.Category{}, fmt.Errorf("category name is required")
	}

	var category model.Category
	err := r.pool.QueryRow(ctx, `
INSERT INTO categories (name, created_at)
VALUES ($1, NOW())
RETURNING id, name, created_at
`, strings.TrimSpace(name)).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Category{}, fmt.Errorf("invalid category id")
	}

	var category model.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, created_at FROM categories WHERE id = $1
`, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("get category by id: %w", err)
	}

	return category, nil
}

// GetByNameFold resolves a category by name ignoring case.
func (r *CategoryRepo) GetByNameFold(ctx context.Context, name string) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(name) == "" {
		return model.Category{}, fmt.Errorf("category name is required")
	}

	var category model.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, created_at
FROM categories
WHERE LOWER(name) = LOWER($1)
LIMIT 1
`, strings.TrimSpace(name)).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("get category by name: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) ListOrderedByName(ctx context.Context) ([]model.Category, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, created_at FROM categories ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

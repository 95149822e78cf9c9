package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mhmad0m0/modcatalog/internal/domain/model"
	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrCategoryExists = errors.New("category already exists")
)

type Store interface {
	Create(ctx context.Context, name string) (model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	GetByNameFold(ctx context.Context, name string) (model.Category, error)
	ListOrderedByName(ctx context.Context) ([]model.Category, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a category. Names are compared case-insensitively, so
// "Maps" and "maps" are the same category.
func (s *Service) Create(ctx context.Context, name string) (model.Category, error) {
	if s.store == nil {
		return model.Category{}, fmt.Errorf("categories store is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrValidation
	}

	existing, err := s.store.GetByNameFold(ctx, name)
	if err == nil {
		return existing, ErrCategoryExists
	}
	if !errors.Is(err, postgres.ErrCategoryNotFound) {
		return model.Category{}, fmt.Errorf("check category name: %w", err)
	}

	category, err := s.store.Create(ctx, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Category, error) {
	if s.store == nil {
		return model.Category{}, fmt.Errorf("categories store is not configured")
	}
	if id <= 0 {
		return model.Category{}, ErrValidation
	}

	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Category, error) {
	if s.store == nil {
		return nil, fmt.Errorf("categories store is not configured")
	}

	return s.store.ListOrderedByName(ctx)
}

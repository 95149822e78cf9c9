package mods

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type Store interface {
	Create(ctx context.Context, mod model.Mod) (model.Mod, error)
	GetApprovedByID(ctx context.Context, id int64) (model.Mod, error)
	ListLatestApproved(ctx context.Context, limit int) ([]model.Mod, error)
	ListApprovedByCategory(ctx context.Context, categoryID int64) ([]model.Mod, error)
	SearchApprovedByName(ctx context.Context, query string) ([]model.Mod, error)
	CountByStatus(ctx context.Context, status enums.ModStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
	IncrementDownloadCount(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

type CreateInput struct {
	Name         string
	Description  string
	DownloadLink string
	ImageKey     string
	CategoryID   *int64
	UploaderTGID int64
}

type Stats struct {
	Total    int64
	Approved int64
	Pending  int64
	Rejected int64
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddApproved persists a mod added by the owner. It is published
// immediately, no review round happens.
func (s *Service) AddApproved(ctx context.Context, input CreateInput) (model.Mod, error) {
	return s.create(ctx, input, enums.ModStatusApproved)
}

// SubmitSuggestion persists a user suggestion that stays invisible on the
// site until the owner approves it.
func (s *Service) SubmitSuggestion(ctx context.Context, input CreateInput) (model.Mod, error) {
	return s.create(ctx, input, enums.ModStatusPending)
}

func (s *Service) create(ctx context.Context, input CreateInput, status enums.ModStatus) (model.Mod, error) {
	if s.store == nil {
		return model.Mod{}, fmt.Errorf("mods store is not configured")
	}
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.DownloadLink) == "" ||
		input.UploaderTGID == 0 {
		return model.Mod{}, ErrValidation
	}

	mod, err := s.store.Create(ctx, model.Mod{
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		DownloadLink: strings.TrimSpace(input.DownloadLink),
		ImageKey:     input.ImageKey,
		CategoryID:   input.CategoryID,
		UploaderTGID: input.UploaderTGID,
		Status:       status,
	})
	if err != nil {
		return model.Mod{}, fmt.Errorf("create mod record: %w", err)
	}

	return mod, nil
}

func (s *Service) GetApproved(ctx context.Context, id int64) (model.Mod, error) {
	if s.store == nil {
		return model.Mod{}, fmt.Errorf("mods store is not configured")
	}
	if id <= 0 {
		return model.Mod{}, ErrValidation
	}

	return s.store.GetApprovedByID(ctx, id)
}

func (s *Service) ListLatest(ctx context.Context, limit int) ([]model.Mod, error) {
	if s.store == nil {
		return nil, fmt.Errorf("mods store is not configured")
	}

	return s.store.ListLatestApproved(ctx, limit)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]model.Mod, error) {
	if s.store == nil {
		return nil, fmt.Errorf("mods store is not configured")
	}
	if categoryID <= 0 {
		return nil, ErrValidation
	}

	return s.store.ListApprovedByCategory(ctx, categoryID)
}

func (s *Service) Search(ctx context.Context, query string) ([]model.Mod, error) {
	if s.store == nil {
		return nil, fmt.Errorf("mods store is not configured")
	}
	if strings.TrimSpace(query) == "" {
		return []model.Mod{}, nil
	}

	return s.store.SearchApprovedByName(ctx, query)
}

func (s *Service) RegisterView(ctx context.Context, id int64) error {
	if s.store == nil {
		return fmt.Errorf("mods store is not configured")
	}
	if id <= 0 {
		return ErrValidation
	}

	return s.store.IncrementViewCount(ctx, id)
}

func (s *Service) RegisterDownload(ctx context.Context, id int64) error {
	if s.store == nil {
		return fmt.Errorf("mods store is not configured")
	}
	if id <= 0 {
		return ErrValidation
	}

	return s.store.IncrementDownloadCount(ctx, id)
}

func (s *Service) BuildStats(ctx context.Context) (Stats, error) {
	if s.store == nil {
		return Stats{}, fmt.Errorf("mods store is not configured")
	}

	total, err := s.store.CountAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	approved, err := s.store.CountByStatus(ctx, enums.ModStatusApproved)
	if err != nil {
		return Stats{}, err
	}
	pending, err := s.store.CountByStatus(ctx, enums.ModStatusPending)
	if err != nil {
		return Stats{}, err
	}
	rejected, err := s.store.CountByStatus(ctx, enums.ModStatusRejected)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Total:    total,
		Approved: approved,
		Pending:  pending,
		Rejected: rejected,
	}, nil
}

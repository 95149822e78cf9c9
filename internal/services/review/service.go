package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

// ErrNotPending is returned when a decision targets a mod whose status
// already moved past pending, e.g. after a restart mid-review.
var ErrNotPending = errors.New("mod is not pending review")

type Store interface {
	ListPendingIDs(ctx context.Context) ([]int64, error)
	GetByID(ctx context.Context, id int64) (model.Mod, error)
	UpdateStatus(ctx context.Context, id int64, status enums.ModStatus) (model.Mod, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// PendingIDs snapshots the identifiers of every mod awaiting review,
// oldest first. A review pass walks this snapshot; submissions arriving
// afterwards wait for the next pass.
func (s *Service) PendingIDs(ctx context.Context) ([]int64, error) {
	if s.store == nil {
		return nil, fmt.Errorf("review store is not configured")
	}

	return s.store.ListPendingIDs(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Mod, error) {
	if s.store == nil {
		return model.Mod{}, fmt.Errorf("review store is not configured")
	}

	return s.store.GetByID(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id int64) (model.Mod, error) {
	return s.decide(ctx, id, enums.ModStatusApproved)
}

func (s *Service) Reject(ctx context.Context, id int64) (model.Mod, error) {
	return s.decide(ctx, id, enums.ModStatusRejected)
}

func (s *Service) decide(ctx context.Context, id int64, status enums.ModStatus) (model.Mod, error) {
	if s.store == nil {
		return model.Mod{}, fmt.Errorf("review store is not configured")
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Mod{}, err
	}
	if current.Status != enums.ModStatusPending {
		return current, ErrNotPending
	}

	mod, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Mod{}, fmt.Errorf("update mod status: %w", err)
	}

	return mod, nil
}

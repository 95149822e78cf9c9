package admins

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhmad0m0/modcatalog/internal/domain/model"
	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
)

type Store interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (model.Admin, error)
	UpsertOwner(ctx context.Context, telegramID int64, username string) (model.Admin, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// EnsureOwner records the owner account on first contact and keeps the
// stored username current afterwards.
func (s *Service) EnsureOwner(ctx context.Context, telegramID int64, username string) (model.Admin, error) {
	if s.store == nil {
		return model.Admin{}, fmt.Errorf("admins store is not configured")
	}
	if telegramID == 0 {
		return model.Admin{}, fmt.Errorf("owner telegram id is empty")
	}

	admin, err := s.store.GetByTelegramID(ctx, telegramID)
	if err == nil && admin.Username == username {
		return admin, nil
	}
	if err != nil && !errors.Is(err, postgres.ErrAdminNotFound) {
		return model.Admin{}, fmt.Errorf("get admin: %w", err)
	}

	admin, err = s.store.UpsertOwner(ctx, telegramID, username)
	if err != nil {
		return model.Admin{}, fmt.Errorf("upsert owner: %w", err)
	}

	return admin, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepo struct {
	pool *pgxpool.Pool
}

func NewAdminRepo(pool *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

func (r *AdminRepo) GetByTelegramID(ctx context.Context, telegramID int64) (model.Admin, error) {
	if r.pool == nil {
		return model.Admin{}, fmt.Errorf("postgres pool is nil")
	}
	if telegramID == 0 {
		return model.Admin{}, fmt.Errorf("invalid telegram id")
	}

	var (
		admin model.Admin
		role  string
	)
	err := r.pool.QueryRow(ctx, `
SELECT telegram_id, username, role, created_at FROM admins WHERE telegram_id = $1
`, telegramID).Scan(&admin.TelegramID, &admin.Username, &role, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Admin{}, ErrAdminNotFound
		}
		return model.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	admin.Role = enums.AdminRole(role)

	return admin, nil
}

// UpsertOwner creates the owner record on first contact and refreshes the
// stored username afterwards.
func (r *AdminRepo) UpsertOwner(ctx context.Context, telegramID int64, username string) (model.Admin, error) {
	if r.pool == nil {
		return model.Admin{}, fmt.Errorf("postgres pool is nil")
	}
	if telegramID == 0 {
		return model.Admin{}, fmt.Errorf("invalid telegram id")
	}

	var (
		admin model.Admin
		role  string
	)
	err := r.pool.QueryRow(ctx, `
INSERT INTO admins (telegram_id, username, role, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username
RETURNING telegram_id, username, role, created_at
`, telegramID, username, string(enums.AdminRoleOwner)).Scan(&admin.TelegramID, &admin.Username, &role, &admin.CreatedAt)
	if err != nil {
		return model.Admin{}, fmt.Errorf("upsert owner admin: %w", err)
	}
	admin.Role = enums.AdminRole(role)

	return admin, nil
}

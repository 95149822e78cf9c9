package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

var ErrModNotFound = errors.New("mod not found")

type ModRepo struct {
	pool *pgxpool.Pool
}

func NewModRepo(pool *pgxpool.Pool) *ModRepo {
	return &ModRepo{pool: pool}
}

const modColumns = `id, name, description, download_link, image_key, category_id, uploader_tg_id, status, view_count, download_count, created_at, updated_at`

func (r *ModRepo) Create(ctx context.Context, mod model.Mod) (model.Mod, error) {
	if r.pool == nil {
		return model.Mod{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(mod.Name) == "" || !mod.Status.Valid() {
		return model.Mod{}, fmt.Errorf("invalid mod payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO mods (name, description, download_link, image_key, category_id, uploader_tg_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING `+modColumns, mod.Name, mod.Description, mod.DownloadLink, mod.ImageKey, mod.CategoryID, mod.UploaderTGID, string(mod.Status))

	created, err := scanMod(row)
	if err != nil {
		return model.Mod{}, fmt.Errorf("create mod: %w", err)
	}

	return created, nil
}

func (r *ModRepo) GetByID(ctx context.Context, id int64) (model.Mod, error) {
	if r.pool == nil {
		return model.Mod{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Mod{}, fmt.Errorf("invalid mod id")
	}

	row := r.pool.QueryRow(ctx, `SELECT `+modColumns+` FROM mods WHERE id = $1`, id)
	mod, err := scanMod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Mod{}, ErrModNotFound
		}
		return model.Mod{}, fmt.Errorf("get mod by id: %w", err)
	}

	return mod, nil
}

func (r *ModRepo) GetApprovedByID(ctx context.Context, id int64) (model.Mod, error) {
	if r.pool == nil {
		return model.Mod{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Mod{}, fmt.Errorf("invalid mod id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+modColumns+`
FROM mods
WHERE id = $1 AND status = $2
`, id, string(enums.ModStatusApproved))
	mod, err := scanMod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Mod{}, ErrModNotFound
		}
		return model.Mod{}, fmt.Errorf("get approved mod by id: %w", err)
	}

	return mod, nil
}

func (r *ModRepo) ListLatestApproved(ctx context.Context, limit int) ([]model.Mod, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+modColumns+`
FROM mods
WHERE status = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, string(enums.ModStatusApproved), limit)
	if err != nil {
		return nil, fmt.Errorf("list latest approved mods: %w", err)
	}
	defer rows.Close()

	return collectMods(rows)
}

func (r *ModRepo) ListApprovedByCategory(ctx context.Context, categoryID int64) ([]model.Mod, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if categoryID <= 0 {
		return nil, fmt.Errorf("invalid category id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+modColumns+`
FROM mods
WHERE category_id = $1 AND status = $2
ORDER BY name ASC, id ASC
`, categoryID, string(enums.ModStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("list approved mods by category: %w", err)
	}
	defer rows.Close()

	return collectMods(rows)
}

func (r *ModRepo) SearchApprovedByName(ctx context.Context, query string) ([]model.Mod, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(query) == "" {
		return []model.Mod{}, nil
	}

	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := r.pool.Query(ctx, `
SELECT `+modColumns+`
FROM mods
WHERE name ILIKE $1 AND status = $2
ORDER BY name ASC, id ASC
`, pattern, string(enums.ModStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("search approved mods: %w", err)
	}
	defer rows.Close()

	return collectMods(rows)
}

func (r *ModRepo) ListPendingIDs(ctx context.Context) ([]int64, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id
FROM mods
WHERE status = $1
ORDER BY created_at ASC, id ASC
`, string(enums.ModStatusPending))
	if err != nil {
		return nil, fmt.Errorf("list pending mod ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending mod id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending mod ids: %w", err)
	}

	return ids, nil
}

func (r *ModRepo) UpdateStatus(ctx context.Context, id int64, status enums.ModStatus) (model.Mod, error) {
	if r.pool == nil {
		return model.Mod{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || !status.Valid() {
		return model.Mod{}, fmt.Errorf("invalid status update payload")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE mods
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING `+modColumns, id, string(status))
	mod, err := scanMod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Mod{}, ErrModNotFound
		}
		return model.Mod{}, fmt.Errorf("update mod status: %w", err)
	}

	return mod, nil
}

func (r *ModRepo) CountByStatus(ctx context.Context, status enums.ModStatus) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if !status.Valid() {
		return 0, fmt.Errorf("invalid mod status %q", status)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM mods WHERE status = $1
`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count mods by status: %w", err)
	}

	return count, nil
}

func (r *ModRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mods`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count mods: %w", err)
	}

	return count, nil
}

func (r *ModRepo) IncrementViewCount(ctx context.Context, id int64) error {
	return r.incrementCounter(ctx, id, "view_count")
}

func (r *ModRepo) IncrementDownloadCount(ctx context.Context, id int64) error {
	return r.incrementCounter(ctx, id, "download_count")
}

func (r *ModRepo) incrementCounter(ctx context.Context, id int64, column string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid mod id")
	}

	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`
UPDATE mods SET %s = %s + 1, updated_at = NOW() WHERE id = $1
`, column, column), id)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrModNotFound
	}

	return nil
}

func scanMod(row pgx.Row) (model.Mod, error) {
	var (
		mod    model.Mod
		status string
	)
	err := row.Scan(
		&mod.ID,
		&mod.Name,
		&mod.Description,
		&mod.DownloadLink,
		&mod.ImageKey,
		&mod.CategoryID,
		&mod.UploaderTGID,
		&status,
		&mod.ViewCount,
		&mod.DownloadCount,
		&mod.CreatedAt,
		&mod.UpdatedAt,
	)
	if err != nil {
		return model.Mod{}, err
	}
	mod.Status = enums.ModStatus(status)
	return mod, nil
}

func collectMods(rows pgx.Rows) ([]model.Mod, error) {
	mods := make([]model.Mod, 0)
	for rows.Next() {
		mod, err := scanMod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mod row: %w", err)
		}
		mods = append(mods, mod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mod rows: %w", err)
	}
	return mods, nil
}

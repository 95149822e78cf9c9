package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/domain/model"
	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
	"github.com/mhmad0m0/modcatalog/internal/transport/http/dto"
	httperrors "github.com/mhmad0m0/modcatalog/internal/transport/http/errors"
)

type ModsService interface {
	ListLatest(ctx context.Context, limit int) ([]model.Mod, error)
	GetApproved(ctx context.Context, id int64) (model.Mod, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Mod, error)
	Search(ctx context.Context, query string) ([]model.Mod, error)
	RegisterView(ctx context.Context, id int64) error
	RegisterDownload(ctx context.Context, id int64) error
}

type CategoriesService interface {
	Get(ctx context.Context, id int64) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// ImageResolver turns a stored object key into a fetchable URL.
type ImageResolver interface {
	PhotoURL(ctx context.Context, key string) (string, error)
}

type CatalogHandler struct {
	mods         ModsService
	categories   CategoriesService
	images       ImageResolver
	logger       *zap.Logger
	homePageSize int
}

func NewCatalogHandler(mods ModsService, categories CategoriesService, images ImageResolver, logger *zap.Logger, homePageSize int) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if homePageSize <= 0 {
		homePageSize = 10
	}
	return &CatalogHandler{
		mods:         mods,
		categories:   categories,
		images:       images,
		logger:       logger,
		homePageSize: homePageSize,
	}
}

// Home lists the newest approved mods together with all categories.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	mods, err := h.mods.ListLatest(r.Context(), h.homePageSize)
	if err != nil {
		h.logger.Warn("list latest mods", zap.Error(err))
		writeInternal(w)
		return
	}

	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.logger.Warn("list categories", zap.Error(err))
		writeInternal(w)
		return
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CategoryResponse{ID: category.ID, Name: category.Name})
	}

	httperrors.Write(w, http.StatusOK, dto.HomeResponse{
		Mods:       h.toSummaries(r.Context(), mods),
		Categories: items,
	})
}

func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r)
	if !ok {
		return
	}

	mod, err := h.mods.GetApproved(r.Context(), id)
	if errors.Is(err, postgres.ErrModNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		h.logger.Warn("get mod", zap.Error(err), zap.Int64("mod_id", id))
		writeInternal(w)
		return
	}

	if err := h.mods.RegisterView(r.Context(), id); err != nil {
		h.logger.Warn("register mod view", zap.Error(err), zap.Int64("mod_id", id))
	} else {
		mod.ViewCount++
	}

	httperrors.Write(w, http.StatusOK, dto.ModDetailResponse{
		ID:            mod.ID,
		Name:          mod.Name,
		Description:   mod.Description,
		DownloadLink:  mod.DownloadLink,
		CategoryID:    mod.CategoryID,
		ImageURL:      h.imageURL(r.Context(), mod),
		ViewCount:     mod.ViewCount,
		DownloadCount: mod.DownloadCount,
		CreatedAt:     mod.CreatedAt,
	})
}

// Download counts the download and redirects to the stored link.
func (h *CatalogHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r)
	if !ok {
		return
	}

	mod, err := h.mods.GetApproved(r.Context(), id)
	if errors.Is(err, postgres.ErrModNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		h.logger.Warn("get mod for download", zap.Error(err), zap.Int64("mod_id", id))
		writeInternal(w)
		return
	}

	if err := h.mods.RegisterDownload(r.Context(), id); err != nil {
		h.logger.Warn("register mod download", zap.Error(err), zap.Int64("mod_id", id))
	}

	http.Redirect(w, r, mod.DownloadLink, http.StatusFound)
}

func (h *CatalogHandler) CategoryMods(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if errors.Is(err, postgres.ErrCategoryNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		h.logger.Warn("get category", zap.Error(err), zap.Int64("category_id", id))
		writeInternal(w)
		return
	}

	mods, err := h.mods.ListByCategory(r.Context(), id)
	if err != nil {
		h.logger.Warn("list mods by category", zap.Error(err), zap.Int64("category_id", id))
		writeInternal(w)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CategoryModsResponse{
		Category: dto.CategoryResponse{ID: category.ID, Name: category.Name},
		Mods:     h.toSummaries(r.Context(), mods),
	})
}

// Search matches approved mods whose name contains the query,
// case-insensitively. A blank query returns an empty result.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	mods, err := h.mods.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("search mods", zap.Error(err), zap.String("query", query))
		writeInternal(w)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SearchResponse{
		Query: query,
		Mods:  h.toSummaries(r.Context(), mods),
	})
}

func (h *CatalogHandler) toSummaries(ctx context.Context, mods []model.Mod) []dto.ModSummaryResponse {
	out := make([]dto.ModSummaryResponse, 0, len(mods))
	for _, mod := range mods {
		out = append(out, dto.ModSummaryResponse{
			ID:            mod.ID,
			Name:          mod.Name,
			CategoryID:    mod.CategoryID,
			ImageURL:      h.imageURL(ctx, mod),
			ViewCount:     mod.ViewCount,
			DownloadCount: mod.DownloadCount,
		})
	}
	return out
}

func (h *CatalogHandler) imageURL(ctx context.Context, mod model.Mod) string {
	if mod.ImageKey == "" || h.images == nil {
		return ""
	}
	url, err := h.images.PhotoURL(ctx, mod.ImageKey)
	if err != nil {
		h.logger.Warn("resolve mod image url", zap.Error(err), zap.Int64("mod_id", mod.ID))
		return ""
	}
	return url
}

func parsePathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
			Code:    "BAD_REQUEST",
			Message: "invalid id",
		})
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
		Code:    "NOT_FOUND",
		Message: "mod or category not found",
	})
}

func writeInternal(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
		Code:    "INTERNAL",
		Message: "internal error",
	})
}

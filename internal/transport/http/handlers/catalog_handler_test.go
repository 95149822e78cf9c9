package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
	"github.com/mhmad0m0/modcatalog/internal/transport/http/dto"
)

type catalogTestMods struct {
	mods      map[int64]model.Mod
	views     map[int64]int
	downloads map[int64]int
}

func newCatalogTestMods(mods ...model.Mod) *catalogTestMods {
	s := &catalogTestMods{
		mods:      map[int64]model.Mod{},
		views:     map[int64]int{},
		downloads: map[int64]int{},
	}
	for _, mod := range mods {
		s.mods[mod.ID] = mod
	}
	return s
}

func (s *catalogTestMods) ListLatest(_ context.Context, limit int) ([]model.Mod, error) {
	var out []model.Mod
	for _, mod := range s.mods {
		if mod.Status == enums.ModStatusApproved && len(out) < limit {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (s *catalogTestMods) GetApproved(_ context.Context, id int64) (model.Mod, error) {
	mod, ok := s.mods[id]
	if !ok || mod.Status != enums.ModStatusApproved {
		return model.Mod{}, postgres.ErrModNotFound
	}
	return mod, nil
}

func (s *catalogTestMods) ListByCategory(_ context.Context, categoryID int64) ([]model.Mod, error) {
	var out []model.Mod
	for _, mod := range s.mods {
		if mod.Status == enums.ModStatusApproved && mod.CategoryID != nil && *mod.CategoryID == categoryID {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (s *catalogTestMods) Search(_ context.Context, query string) ([]model.Mod, error) {
	if query == "" {
		return []model.Mod{}, nil
	}
	var out []model.Mod
	for _, mod := range s.mods {
		if mod.Status == enums.ModStatusApproved && strings.Contains(strings.ToLower(mod.Name), strings.ToLower(query)) {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (s *catalogTestMods) RegisterView(_ context.Context, id int64) error {
	s.views[id]++
	return nil
}

func (s *catalogTestMods) RegisterDownload(_ context.Context, id int64) error {
	s.downloads[id]++
	return nil
}

type catalogTestCategories struct {
	categories []model.Category
}

func (s *catalogTestCategories) Get(_ context.Context, id int64) (model.Category, error) {
	for _, category := range s.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return model.Category{}, postgres.ErrCategoryNotFound
}

func (s *catalogTestCategories) List(context.Context) ([]model.Category, error) {
	return s.categories, nil
}

type catalogTestImages struct{}

func (catalogTestImages) PhotoURL(_ context.Context, key string) (string, error) {
	return "https://s3.test/" + key, nil
}

func newCatalogRouter(mods ModsService, categories CategoriesService) chi.Router {
	h := NewCatalogHandler(mods, categories, catalogTestImages{}, nil, 20)
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/mods/{id}", h.Detail)
	r.Get("/mods/{id}/download", h.Download)
	r.Get("/categories/{id}/mods", h.CategoryMods)
	r.Get("/search", h.Search)
	return r
}

func catID(id int64) *int64 { return &id }

func TestHomeListsApprovedOnly(t *testing.T) {
	mods := newCatalogTestMods(
		model.Mod{ID: 1, Name: "Approved", Status: enums.ModStatusApproved},
		model.Mod{ID: 2, Name: "Pending", Status: enums.ModStatusPending},
	)
	router := newCatalogRouter(mods, &catalogTestCategories{categories: []model.Category{{ID: 1, Name: "Maps"}}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp dto.HomeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Mods) != 1 || resp.Mods[0].Name != "Approved" {
		t.Fatalf("mods = %+v", resp.Mods)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].Name != "Maps" {
		t.Fatalf("categories = %+v", resp.Categories)
	}
}

func TestDetailIncrementsView(t *testing.T) {
	mods := newCatalogTestMods(model.Mod{
		ID:       5,
		Name:     "Shaders",
		Status:   enums.ModStatusApproved,
		ImageKey: "mods/key.jpg",
	})
	router := newCatalogRouter(mods, &catalogTestCategories{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mods/5", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if mods.views[5] != 1 {
		t.Fatalf("views = %d, want 1", mods.views[5])
	}
	var resp dto.ModDetailResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ImageURL != "https://s3.test/mods/key.jpg" {
		t.Fatalf("image url = %q", resp.ImageURL)
	}
	if resp.ViewCount != 1 {
		t.Fatalf("view count = %d, want 1", resp.ViewCount)
	}
}

func TestDetailHidesPendingMods(t *testing.T) {
	mods := newCatalogTestMods(model.Mod{ID: 9, Name: "Hidden", Status: enums.ModStatusPending})
	router := newCatalogRouter(mods, &catalogTestCategories{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mods/9", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if mods.views[9] != 0 {
		t.Fatalf("pending mod got a view increment")
	}
}

func TestDetailBadID(t *testing.T) {
	router := newCatalogRouter(newCatalogTestMods(), &catalogTestCategories{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mods/abc", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestDownloadRedirectsAndCounts(t *testing.T) {
	mods := newCatalogTestMods(model.Mod{
		ID:           3,
		Name:         "Mod",
		DownloadLink: "https://example.com/mod.zip",
		Status:       enums.ModStatusApproved,
	})
	router := newCatalogRouter(mods, &catalogTestCategories{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mods/3/download", nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "https://example.com/mod.zip" {
		t.Fatalf("redirect location = %q", got)
	}
	if mods.downloads[3] != 1 {
		t.Fatalf("downloads = %d, want 1", mods.downloads[3])
	}
}

func TestCategoryMods(t *testing.T) {
	mods := newCatalogTestMods(
		model.Mod{ID: 1, Name: "In", Status: enums.ModStatusApproved, CategoryID: catID(7)},
		model.Mod{ID: 2, Name: "Out", Status: enums.ModStatusApproved, CategoryID: catID(8)},
	)
	router := newCatalogRouter(mods, &catalogTestCategories{categories: []model.Category{{ID: 7, Name: "Maps"}}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories/7/mods", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp dto.CategoryModsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Category.Name != "Maps" {
		t.Fatalf("category = %+v", resp.Category)
	}
	if len(resp.Mods) != 1 || resp.Mods[0].Name != "In" {
		t.Fatalf("mods = %+v", resp.Mods)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories/99/mods", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing category status = %d, want 404", rr.Code)
	}
}

func TestSearch(t *testing.T) {
	mods := newCatalogTestMods(
		model.Mod{ID: 1, Name: "Shaders Pack", Status: enums.ModStatusApproved},
		model.Mod{ID: 2, Name: "Texture Pack", Status: enums.ModStatusApproved},
		model.Mod{ID: 3, Name: "shader addon", Status: enums.ModStatusPending},
	)
	router := newCatalogRouter(mods, &catalogTestCategories{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?query=shader", nil))

	var resp dto.SearchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Mods) != 1 || resp.Mods[0].Name != "Shaders Pack" {
		t.Fatalf("mods = %+v", resp.Mods)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?query=++", nil))
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Mods) != 0 {
		t.Fatalf("blank query returned %d mods", len(resp.Mods))
	}
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler()

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Ping(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "pong" {
		t.Fatalf("ping = %d %q", rr.Code, rr.Body.String())
	}
}

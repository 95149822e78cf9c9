package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/transport/http/handlers"
)

type Dependencies struct {
	ModsService       handlers.ModsService
	CategoriesService handlers.CategoriesService
	ImageResolver     handlers.ImageResolver
	Logger            *zap.Logger
	HomePageSize      int
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	catalogHandler := handlers.NewCatalogHandler(
		deps.ModsService,
		deps.CategoriesService,
		deps.ImageResolver,
		deps.Logger,
		deps.HomePageSize,
	)

	r.Get("/healthz", healthHandler.Get)
	r.Get("/ping", healthHandler.Ping)
	r.Get("/", catalogHandler.Home)
	r.Get("/mods/{id}", catalogHandler.Detail)
	r.Get("/mods/{id}/download", catalogHandler.Download)
	r.Get("/categories/{id}/mods", catalogHandler.CategoryMods)
	r.Get("/search", catalogHandler.Search)
}

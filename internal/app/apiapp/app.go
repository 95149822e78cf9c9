package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/config"
	s3infra "github.com/mhmad0m0/modcatalog/internal/infra/s3"
	pgrepo "github.com/mhmad0m0/modcatalog/internal/repo/postgres"
	"github.com/mhmad0m0/modcatalog/internal/services/categories"
	"github.com/mhmad0m0/modcatalog/internal/services/images"
	"github.com/mhmad0m0/modcatalog/internal/services/mods"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pgrepo.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var s3Client *minio.Client
	var imagesService *images.Service
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		if c, err := s3infra.NewClient(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		}); err != nil {
			log.Warn("s3 init failed, mod images will have no urls", zap.Error(err))
		} else {
			s3Client = c
			imagesService = images.NewService(images.NewS3Storage(s3Client, cfg.S3.Bucket))
		}
	} else {
		log.Warn("s3 is not configured, mod images will have no urls")
	}

	modRepo := pgrepo.NewModRepo(pool)
	categoryRepo := pgrepo.NewCategoryRepo(pool)

	deps := Dependencies{
		ModsService:       mods.NewService(modRepo),
		CategoriesService: categories.NewService(categoryRepo),
		Logger:            log,
		HomePageSize:      cfg.Catalog.HomePageSize,
	}
	if imagesService != nil {
		deps.ImageResolver = imagesService
	}
	RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("catalog server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.postgres != nil {
		a.postgres.Close()
	}
	return err
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

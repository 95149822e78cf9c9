package botapp

import (
	"context"
	"fmt"
	"io"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/config"
	s3infra "github.com/mhmad0m0/modcatalog/internal/infra/s3"
	"github.com/mhmad0m0/modcatalog/internal/infra/telegram"
	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
	"github.com/mhmad0m0/modcatalog/internal/services/admins"
	"github.com/mhmad0m0/modcatalog/internal/services/categories"
	"github.com/mhmad0m0/modcatalog/internal/services/images"
	"github.com/mhmad0m0/modcatalog/internal/services/mods"
	"github.com/mhmad0m0/modcatalog/internal/services/review"
)

// Transport is the slice of the telegram client the update handlers use.
type Transport interface {
	Send(msg tgbotapi.Chattable) error
	Request(msg tgbotapi.Chattable) error
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, int64, string, string, error)
}

type App struct {
	cfg    config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	tg     Transport
	client *telegram.Client

	modsService       *mods.Service
	categoriesService *categories.Service
	reviewService     *review.Service
	imagesService     *images.Service
	adminsService     *admins.Service

	addMu     sync.Mutex
	addByChat map[int64]addModState

	categoryMu     sync.Mutex
	categoryByChat map[int64]categoryAddState

	reviewMu     sync.Mutex
	reviewByChat map[int64]reviewState
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var imagesService *images.Service
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err := s3infra.NewClient(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		storage := images.NewS3Storage(s3Client, cfg.S3.Bucket)
		if err := storage.EnsureBucket(ctx); err != nil {
			logger.Warn("ensure s3 bucket", zap.Error(err))
		}
		imagesService = images.NewService(storage)
	} else {
		logger.Warn("s3 is not configured, mod images are disabled")
	}

	modRepo := postgres.NewModRepo(pool)
	categoryRepo := postgres.NewCategoryRepo(pool)
	adminRepo := postgres.NewAdminRepo(pool)

	app := &App{
		cfg:               cfg,
		logger:            logger,
		pool:              pool,
		modsService:       mods.NewService(modRepo),
		categoriesService: categories.NewService(categoryRepo),
		reviewService:     review.NewService(modRepo),
		imagesService:     imagesService,
		adminsService:     admins.NewService(adminRepo),
		addByChat:         make(map[int64]addModState),
		categoryByChat:    make(map[int64]categoryAddState),
		reviewByChat:      make(map[int64]reviewState),
	}

	app.client, err = telegram.NewClient(cfg.Bot.Token, cfg.Bot.PollTimeoutSeconds, logger, app.routeUpdate)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	app.tg = app.client

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()
	return a.client.Start(ctx)
}

func (a *App) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *App) isOwner(tgID int64) bool {
	return tgID != 0 && tgID == a.cfg.Bot.OwnerTGID
}

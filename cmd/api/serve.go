package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"coverapi/docs"
	"coverapi/internal/auth"
	"coverapi/internal/cache"
	"coverapi/internal/config"
	"coverapi/internal/database"
	"coverapi/internal/database/migration"
	handlers "coverapi/internal/http/handler"
	"coverapi/internal/http/middleware"
	"coverapi/internal/llm"
	apiotel "coverapi/internal/otel"
	"coverapi/internal/repository/postgres"
	"coverapi/internal/service"
	"coverapi/internal/storage"
)

const (
	bodyLimit       = 10 << 20
	shutdownTimeout = 10 * time.Second
)

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := middleware.NewJSONLogger(cfg.LogLevel)
	started := time.Now()

	shutdownTracing, err := apiotel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Error("tracing setup failed")
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Error("failed to connect to database")
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Up(ctx, db, log, cfg.Database.Host); err != nil {
			return err
		}
	}

	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Error("failed to initialize object storage")
		return err
	}

	users := postgres.NewUserPostgres(db)
	letterRepo := postgres.NewCoverLetterPostgres(db)
	cvRepo := postgres.NewCVPostgres(db)
	fileRepo := postgres.NewFilePostgres(db)
	cacheRepo := postgres.NewCachePostgres(db)
	stats := postgres.NewStatsPostgres(db)

	kv := cache.NewStore(cacheRepo)
	purger, err := cache.NewPurger(cacheRepo, cfg.CachePurgeSchedule, log)
	if err != nil {
		return fmt.Errorf("cache purge schedule: %w", err)
	}
	purger.Start()
	defer purger.Stop()

	timeout := time.Duration(cfg.Providers.TimeoutSec) * time.Second
	gemini, err := llm.NewGemini(ctx, cfg.Providers.GeminiAPIKey, cfg.Providers.GeminiModel)
	if err != nil {
		return fmt.Errorf("gemini client: %w", err)
	}
	defer gemini.Close()
	groq, err := llm.NewGroq(cfg.Providers.GroqAPIKey, cfg.Providers.GroqModel, cfg.Providers.GroqBaseURL, timeout)
	if err != nil {
		return fmt.Errorf("groq client: %w", err)
	}
	images, err := llm.NewImages(cfg.Providers.ImageAPIKey, cfg.Providers.ImageModel, cfg.Providers.ImageBaseURL, timeout)
	if err != nil {
		return fmt.Errorf("image client: %w", err)
	}

	passwords, err := auth.NewPasswords(cfg.Auth)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokens(cfg.Auth, kv)
	if err != nil {
		return err
	}

	letters := service.NewCoverLetterService(letterRepo)
	analytics := service.NewAnalyticsService(stats, started)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Tokens:   tokens,
		Gatherer: reg,

		Auth:         service.NewAuthService(users, passwords, tokens, kv, log),
		CoverLetters: letters,
		CVs:          service.NewCVService(cvRepo),
		Files:        service.NewFileService(objStore, fileRepo, users, kv, log, fileOptions(cfg.Storage)...),
		Generation:   service.NewGenerationService(groq, letters, kv, log),
		Chat:         service.NewChatService(gemini, kv, log),
		Headshots:    service.NewHeadshotService(images, objStore, fileRepo, log),
		Insights:     service.NewInsightService(gemini),
		Analytics:    analytics,
		Reports:      service.NewReportService(analytics),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()
	log.WithField("port", cfg.Port).Info("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("failed to start server")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithError(err).Warn("graceful shutdown incomplete")
	}
	return nil
}

// fileOptions hands out signed download links when objects have no public URL.
func fileOptions(cfg config.StorageConfig) []service.FileOption {
	if cfg.PublicBaseURL != "" || cfg.SignedURLTTLSec <= 0 {
		return nil
	}
	return []service.FileOption{service.WithSignedURLs(time.Duration(cfg.SignedURLTTLSec) * time.Second)}
}

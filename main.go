package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/dellmdq/OT109-Server/app/db"
	appLogger "github.com/dellmdq/OT109-Server/app/logger"
	"github.com/dellmdq/OT109-Server/app/observability/metrics"
	"github.com/dellmdq/OT109-Server/config"
	_ "github.com/dellmdq/OT109-Server/docs"
	"github.com/dellmdq/OT109-Server/internal/api/auth"
	"github.com/dellmdq/OT109-Server/internal/api/category"
	"github.com/dellmdq/OT109-Server/internal/api/comment"
	"github.com/dellmdq/OT109-Server/internal/api/contact"
	"github.com/dellmdq/OT109-Server/internal/api/member"
	"github.com/dellmdq/OT109-Server/internal/api/news"
	"github.com/dellmdq/OT109-Server/internal/api/notify"
	"github.com/dellmdq/OT109-Server/internal/api/organization"
	"github.com/dellmdq/OT109-Server/internal/api/storage"
	"github.com/dellmdq/OT109-Server/internal/api/testimonial"
	"github.com/dellmdq/OT109-Server/internal/api/user"
	"github.com/dellmdq/OT109-Server/internal/router"
)

//	@title			ONG Server API
//	@version		1.0
//	@description	REST API for the ONG management platform.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Metrics ---
	metricsHandler, err := metrics.SetupMeterProvider()
	if err != nil {
		logger.Error("Failed to set up meter provider", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Dependency wiring ---
	tokens, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		logger.Error("Failed to initialize token service", slog.Any("error", err))
		os.Exit(1)
	}
	notifier := notify.NewSendGridNotifier(cfg.Mail, logger)

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, tokens, notifier, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	userService := user.NewUserService(user.NewPostgresUserRepo(pool, logger), authRepo, logger)
	categoryService := category.NewCategoryService(category.NewPostgresCategoryRepo(pool, logger), logger)
	newsService := news.NewNewsService(news.NewPostgresNewsRepo(pool, logger), logger)
	commentService := comment.NewCommentService(comment.NewPostgresCommentRepo(pool, logger), logger)
	testimonialService := testimonial.NewTestimonialService(testimonial.NewPostgresTestimonialRepo(pool, logger), logger)
	memberService := member.NewMemberService(member.NewPostgresMemberRepo(pool, logger), logger)
	contactService := contact.NewContactService(contact.NewPostgresContactRepo(pool, logger), logger)
	organizationService := organization.NewOrganizationService(organization.NewPostgresOrganizationRepo(pool, logger), logger)

	imageStore, err := storage.NewS3ImageStore(ctx, cfg.AWS, logger)
	if err != nil {
		logger.Error("Failed to initialize S3 image store", slog.Any("error", err))
		os.Exit(1)
	}

	policy := auth.DefaultPolicy()

	routerConfig := &router.Config{
		AuthHandler:         authHandler,
		UserHandler:         user.NewUserHandler(userService, logger),
		CategoryHandler:     category.NewCategoryHandler(categoryService, logger),
		NewsHandler:         news.NewNewsHandler(newsService, logger),
		CommentHandler:      comment.NewCommentHandler(commentService, logger),
		TestimonialHandler:  testimonial.NewTestimonialHandler(testimonialService, logger),
		MemberHandler:       member.NewMemberHandler(memberService, logger),
		ContactHandler:      contact.NewContactHandler(contactService, logger),
		OrganizationHandler: organization.NewOrganizationHandler(organizationService, logger),
		StorageHandler:      storage.NewStorageHandler(imageStore, logger),

		AuthenticateMiddleware: auth.Authenticate(logger, tokens, authService, policy),
		RequestLogger:          appLogger.StructuredLogger(logger),
	}
	mainRouter := router.SetupRouter(routerConfig)

	apiSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      mainRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Addr:     fmt.Sprintf(":%s", cfg.Server.MetricsPort),
		Handler:  metricsMux,
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server graceful shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		return slog.New(tint.NewHandler(os.Stdout, tintOpts))
	}

	jsonOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carwash-tracker/config"
	deliveryHttp "carwash-tracker/internal/delivery/http"
	"carwash-tracker/internal/delivery/http/handler"
	"carwash-tracker/internal/delivery/http/middleware"
	domainRepo "carwash-tracker/internal/domain/repository"
	"carwash-tracker/internal/infrastructure/cache"
	"carwash-tracker/internal/infrastructure/database"
	"carwash-tracker/internal/repository"
	"carwash-tracker/internal/service"
	"carwash-tracker/internal/usecase"
	"carwash-tracker/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	PrunerJob   *service.PrunerJob
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize the booking store backend
	store, err := app.initializeStore(cfg)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Booking store initialized: backend=%s", cfg.Store.Backend)

	// Initialize all layers
	server, prunerJob := initializeServer(cfg, store)
	app.Server = server
	app.PrunerJob = prunerJob

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeStore opens the configured booking store backend and keeps
// the underlying connection on the App for shutdown.
func (app *App) initializeStore(cfg *config.Config) (domainRepo.BookingStore, error) {
	switch cfg.Store.Backend {
	case "file":
		return repository.NewFileBookingStore(cfg.Store.FilePath), nil
	case "postgres":
		db, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		return repository.NewGormBookingStore(db), nil
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		return repository.NewRedisBookingStore(redisClient), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, store domainRepo.BookingStore) (*http.Server, *service.PrunerJob) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// One collection serializes every load-mutate-save cycle, shared
	// by request handling and the background pruner.
	collection := repository.NewCollection(store)

	window := service.BusinessWindow{
		StartMinutes: cfg.Timeline.DayStartMinutes,
		EndMinutes:   cfg.Timeline.DayEndMinutes,
	}

	// Initialize usecases
	bookingUsecase := usecase.NewBookingUsecase(collection, log, cfg.Pruner.Retention)
	webhookUsecase := usecase.NewWebhookUsecase(collection, log)
	timelineUsecase := usecase.NewTimelineUsecase(collection, log, window, cfg.Timeline.Width, cfg.Pruner.Retention)

	// Initialize the background pruner
	prunerJob := service.NewPrunerJob(collection, log, cfg.Pruner.Interval, cfg.Pruner.Retention)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	webhookHandler := handler.NewWebhookHandler(webhookUsecase, customValidator)
	timelineHandler := handler.NewTimelineHandler(timelineUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(bookingHandler, webhookHandler, timelineHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, prunerJob
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start the background pruner
	app.PrunerJob.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background work and close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops the pruner and closes all connections
func (app *App) Close() {
	if app.PrunerJob != nil {
		app.PrunerJob.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/akarpov/storefront-api/internal/config"
	"github.com/akarpov/storefront-api/internal/platform/postgres"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/service/auth"
	"github.com/akarpov/storefront-api/internal/store"
	"github.com/akarpov/storefront-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	orderStore   store.OrderStore
	studentStore store.StudentStore

	// Service interfaces
	jwtService     auth.JWTService
	userService    service.UserService
	orderService   service.OrderService
	studentService service.StudentService

	// Background execution
	executor *task.Executor
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(auth.Config{
		Secret:        cfg.Auth.JWTSecret,
		TokenLifetime: time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	hasher := auth.NewBcryptHasher(0)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.orderStore = postgres.NewPostgresOrderStore(db, logger)
	app.studentStore = postgres.NewPostgresStudentStore(db, logger)

	// Initialize background executor
	app.executor = task.NewExecutor(task.ExecutorConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.executor.Start()

	// Initialize services
	app.userService, err = service.NewUserService(app.userStore, db, hasher, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.orderService, err = service.NewOrderService(app.orderStore, app.userStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	app.studentService, err = service.NewStudentService(app.studentStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create student service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop background executor, draining queued jobs
	if app.executor != nil {
		app.executor.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

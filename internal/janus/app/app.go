package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/janus/internal/janus/http"
	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/internal/janus/store"
	"github.com/aussiebroadwan/janus/internal/janus/store/drivers/postgres"
	"github.com/aussiebroadwan/janus/internal/janus/store/drivers/sqlite"
	"github.com/aussiebroadwan/janus/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the janus service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	registry *prometheus.Registry
	metrics  *service.Metrics
	notifier service.Notifier
	redis    *redis.Client
	relay    *service.RedisNotifier // nil unless JANUS_REDIS_ADDR is set

	// Services
	userService    *service.UserService
	requestService *service.RequestService
	pollingGateway *service.PollingGateway
	adminService   *service.AdminService
	backlogService *service.BacklogService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "janus",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initNotifier(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMetrics()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.backlogService.Start()

	app.logger.Info("janus starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application. Open long polls are given
// the grace period to finish.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down janus...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.backlogService.Stop()

	if app.relay != nil {
		app.relay.Stop()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("janus stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

// initNotifier picks the in-process notifier, or the redis relay when several
// instances share one ledger.
func (app *Application) initNotifier(ctx context.Context) error {
	if app.cfg.RedisAddr == "" {
		app.notifier = service.NewMemoryNotifier()
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: app.cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	relay := service.NewRedisNotifier(client, app.logger)
	if err := relay.Start(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to subscribe to pending notifications: %w", err)
	}

	app.redis = client
	app.relay = relay
	app.notifier = relay
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(collectors.NewGoCollector())
	app.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = service.NewMetrics(app.registry)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.requestService = &service.RequestService{
		Store:    app.db,
		Notifier: app.notifier,
		Metrics:  app.metrics,
	}
	app.pollingGateway = &service.PollingGateway{
		Requests:   app.requestService,
		Notifier:   app.notifier,
		Metrics:    app.metrics,
		PendingTTL: app.cfg.PendingTTL,
	}
	app.adminService = &service.AdminService{Store: app.db}

	app.backlogService = service.NewBacklogService(
		app.db,
		app.logger,
		app.metrics,
		app.cfg.BacklogInterval,
		app.cfg.PendingTTL,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger, app.registry)

	router.UserService = app.userService
	router.RequestService = app.requestService
	router.PollingGateway = app.pollingGateway
	router.AdminService = app.adminService
	router.MaxPollWait = app.cfg.MaxPollWait
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// Package server initializes and runs the portal: it opens the record
// store and the session caches, wires the services and serves the JSON
// API and the gRPC health endpoint until the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/server/cache"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/dmitrijs2005/sitereg/internal/server/forms"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/sitereg/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/sitereg/internal/server/grpc"
	hs "github.com/dmitrijs2005/sitereg/internal/server/http"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	redis   *redis.Client
	handler *hs.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	for _, w := range c.PlaceholderWarnings() {
		logger.Warn(ctx, "insecure configuration", "warning", w)
	}

	repos, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, repos: repos}

	var (
		lockouts    cache.LockoutStore    = cache.NewMemoryLockoutStore()
		revocations cache.RevocationStore = cache.NewMemoryRevocationStore()
	)
	if c.RedisURL != "" {
		client, err := cache.Connect(ctx, c.RedisURL)
		if err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		lockouts = cache.NewRedisLockoutStore(client)
		revocations = cache.NewRedisRevocationStore(client)
	}

	admin, err := services.NewAdminService(c, lockouts, revocations, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	files := services.NewFileStore(c)
	svc := hs.Services{
		Registration: services.NewRegistrationService(repos, forms.New(forms.DefaultOptions()), files, logger, c),
		Admin:        admin,
		Records:      services.NewRecordService(repos, logger),
		Dashboard:    services.NewDashboardService(repos, c),
		Attachments:  services.NewAttachmentService(repos, files, logger),
	}
	app.handler = hs.NewHandler(svc, repos, logger, c.UploadMaxBytes)

	return app, nil
}

// Close releases the store and cache connections.
func (app *App) Close() error {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	errs = append(errs, app.repos.Close())
	return errors.Join(errs...)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.repos, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:         app.config.HTTPAddr,
		Handler:      hs.NewRouter(app.handler),
		ReadTimeout:  app.config.ReadTimeout,
		WriteTimeout: app.config.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// server fails to start.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}

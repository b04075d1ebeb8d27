// Package server wires the pwakit services together and runs the HTTP and
// gRPC front ends until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pwakit/internal/i18n"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/config"
	"github.com/dmitrijs2005/pwakit/internal/server/httpapi"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pwakit/internal/server/services"
	"github.com/dmitrijs2005/pwakit/internal/server/storage"
	"github.com/dmitrijs2005/pwakit/internal/telemetry"

	gs "github.com/dmitrijs2005/pwakit/internal/server/grpc"
)

const serviceName = "pwakit"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	shutdown    telemetry.ShutdownFunc
	iconService *services.IconService
	httpServer  *httpapi.HTTPServer
	grpcServer  *gs.GRPCServer
}

// NewApp opens the database, applies migrations, prepares the image store
// and builds both servers. Existing icons are tracked on a fresh ledger.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	shutdown, err := telemetry.Setup(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("db init error: %w", err), shutdown(ctx))
	}

	app := &App{config: c, logger: logger, db: db, shutdown: shutdown}

	if err := app.build(ctx, rm); err != nil {
		return nil, errors.Join(err, app.Close(ctx))
	}
	return app, nil
}

func (app *App) build(ctx context.Context, rm repomanager.RepositoryManager) error {
	c := app.config

	if err := rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	store, err := storage.New(ctx, c)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}

	tr, err := i18n.New(c.Locale)
	if err != nil {
		return fmt.Errorf("i18n init error: %w", err)
	}

	tracker := services.NewFileTracker(app.db, rm)
	icons := services.NewIconService(store, tracker, services.NewIconCache(c.IconCacheTTL), app.logger)
	auth := services.NewAuthService(c, app.logger)

	res, err := icons.Install(ctx)
	if err != nil {
		return fmt.Errorf("icon install error: %w", err)
	}
	if res.Changed() || len(res.Skipped) > 0 {
		app.logger.Info(ctx, "initial icons tracked", "tracked", len(res.Tracked), "skipped", len(res.Skipped))
	}

	app.iconService = icons
	app.httpServer = httpapi.NewHTTPServer(c.HTTPAddr, &httpapi.Deps{
		Icons:      icons,
		Settings:   services.NewSettingsService(app.db, rm, app.logger),
		Hooks:      services.NewHooks(icons),
		Auth:       auth,
		Translator: tr,
		Logger:     app.logger,
		BoardPath:  c.BoardPath,
		PresignTTL: c.PresignTTL,
	})
	app.grpcServer = gs.NewGRPCServer(c.GRPCAddr, app.logger, icons, auth, tr)
	return nil
}

// Uninstall forgets every tracked icon. Icon files stay where they are and
// are tracked again by the next start.
func (app *App) Uninstall(ctx context.Context) error {
	if err := app.iconService.Uninstall(ctx); err != nil {
		return fmt.Errorf("uninstall error: %w", err)
	}
	app.logger.Info(ctx, "tracked icons removed")
	return nil
}

// Close releases the database and flushes traces.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	if app.shutdown != nil {
		errs = append(errs, app.shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is done or one server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.iconService.Provider(), "path", app.iconService.StoragePath())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.httpServer.Run)
	}()

	wg.Wait()

	if err := app.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
}

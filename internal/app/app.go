// Package app initializes and runs the clipvault daemon. It wires the
// database, the OS credential store, the vault, the history service and the
// clipboard watcher, and handles graceful shutdown.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/clipvault/internal/clipboard"
	"github.com/dmitrijs2005/clipvault/internal/config"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/secret"
	"github.com/dmitrijs2005/clipvault/internal/service"
	"github.com/dmitrijs2005/clipvault/internal/settings"
	"github.com/dmitrijs2005/clipvault/internal/store"
	"github.com/dmitrijs2005/clipvault/internal/vault"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	vault   *vault.Vault
	history *service.History
	watcher *clipboard.Watcher
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	mgr, err := settings.NewManager(c.SettingsPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("settings init error: %w", err)
	}

	v := vault.New(secret.NewKeyring(), c.KeyringService, c.KeyringAccount, mgr.AutoLock(), logger)

	source, err := clipboard.NewSystemSource()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("clipboard init error: %w", err)
	}

	history := service.NewHistory(store.NewSQLiteRepository(db), v, source, mgr, logger)
	watcher := clipboard.NewWatcher(source, history, c.PollInterval, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		vault:   v,
		history: history,
		watcher: watcher,
	}, nil
}

// History exposes the application service for embedding hosts (UI shells,
// test harnesses).
func (app *App) History() *service.History {
	return app.history
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

// Run unlocks the vault, starts the capture loop and blocks until ctx is
// cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.history.Unlock(ctx); err != nil {
		app.logger.Error(ctx, "initial unlock failed", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.watcher.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-app.watcher.Events():
				app.logger.Debug(ctx, "history changed", "id", e.ID, "kind", e.Kind)
			}
		}
	}()

	wg.Wait()

	app.shutdown()
}

func (app *App) shutdown() {
	ctx := context.Background()
	app.vault.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database failed", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}

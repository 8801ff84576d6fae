package app

import (
	"context"
	"log/slog"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"webbuilder/internal/canvas"
	"webbuilder/internal/config"
	"webbuilder/internal/domain"
	"webbuilder/internal/editor"
	applog "webbuilder/internal/log"
	"webbuilder/internal/service"
	"webbuilder/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg        config.AppConfig
	configPath string

	db        *storage.DB
	store     *editor.Store
	canvas    *canvas.Controller
	preview   *service.PreviewService
	retention *service.Retention
	window    *service.WindowSettingsService

	log *slog.Logger
}

// New loads the config and logger before Wails starts so main can size the
// window from saved settings.
func New() *App {
	cfg, err := config.Load()
	applog.Init(logOptions(cfg.Logging))
	a := &App{cfg: cfg, log: applog.WithComponent("app")}
	if err != nil {
		a.log.Warn("config load failed, using defaults", "err", err)
	}
	a.configPath, _ = config.ConfigPath()

	db, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		a.log.Error("open database", "dir", cfg.Storage.DataDir, "err", err)
		a.window = service.NewWindowSettingsService(nil, cfg.Window)
		return a
	}
	a.db = db
	a.window = service.NewWindowSettingsService(storage.NewSettingsStore(db), cfg.Window)
	return a
}

// WindowSize is the size main passes to wails.Run.
func (a *App) WindowSize() service.WindowSize {
	return a.window.LoadWindowSize()
}

// wailsEmitter forwards editor events to the frontend.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.wire(a.ctx, wailsEmitter{})

	if a.retention != nil {
		if err := a.retention.Start(); err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to start retention: %v", err)
		}
	}

	wailsRuntime.LogInfof(ctx, "webbuilder started, data dir %s", a.cfg.Storage.DataDir)

	if a.configPath != "" {
		if err := config.Watch(a.ctx, a.configPath, a.applyConfig); err != nil {
			a.log.Warn("config watch disabled", "path", a.configPath, "err", err)
		}
	}
}

// wire builds the editor and its services. Shared with the MCP-only mode.
func (a *App) wire(ctx context.Context, emitter service.EventEmitter) {
	a.store = editor.NewStore(ctx, emitter)
	a.canvas = canvas.NewController(a.store, canvas.Options{ClampResizeDrift: a.cfg.Editor.ClampResizeDrift})

	var calls domain.APICallStore
	if a.db != nil {
		store := storage.NewAPICallStore(a.db)
		calls = store
		a.retention = service.NewRetention(store, a.cfg.Retention)
	}
	a.preview = service.NewPreviewService(a.store, calls, a.cfg.Preview)
}

// applyConfig is the config.Watch callback.
func (a *App) applyConfig(cfg config.AppConfig) {
	applog.SetLevel(cfg.Logging.Level)
	a.preview.SetConfig(cfg.Preview)
	a.canvas.SetOptions(canvas.Options{ClampResizeDrift: cfg.Editor.ClampResizeDrift})
	a.log.Info("config reloaded", "level", cfg.Logging.Level, "clamp_resize_drift", cfg.Editor.ClampResizeDrift)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if w, h := wailsRuntime.WindowGetSize(ctx); w > 0 && h > 0 {
		if err := a.window.SaveWindowSize(w, h); err != nil {
			a.log.Warn("save window size", "err", err)
		}
	}
	a.close(ctx)
}

func (a *App) close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.preview != nil {
		a.preview.Wait(ctx)
	}
	if a.retention != nil {
		a.retention.Stop()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	applog.Close()
}

// logOptions maps the logging section, which already carries the
// WEBBUILDER_LOG_* overrides, onto logger options.
func logOptions(c config.LoggingConfig) applog.Options {
	return applog.Options{
		Level:     c.Level,
		Format:    c.Format,
		AddSource: c.Source,
		File:      c.File,
	}
}

// Package cli implements the interactive terminal client: a small REPL on
// top of the catalogue services.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/vitrine-app/vitrine/internal/client/cache"
	"github.com/vitrine-app/vitrine/internal/client/config"
	"github.com/vitrine-app/vitrine/internal/client/events"
	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/client/remote"
	"github.com/vitrine-app/vitrine/internal/client/services"
	"github.com/vitrine-app/vitrine/internal/client/store"
	"github.com/vitrine-app/vitrine/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   *store.Store
	catalog *services.Catalog
	syncer  *services.Syncer
	ctrl    *services.Controller

	userName string
	reader   *bufio.Reader

	// mode holds a Mode; the online-status watcher writes it while the
	// REPL goroutine reads it for the prompt.
	mode atomic.Value
}

func NewApp(cfg *config.Config) *App {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	s := store.New(cfg.DatabasePath, log)
	gw := store.NewGateway(s, log)

	c := cache.New()
	changed := &events.Emitter[struct{}]{}
	toasts := &events.Emitter[models.Event]{}
	hyd := cache.NewHydrator(gw, c, changed, log)
	rc := remote.New(cfg.ServerBaseURL, log)
	offline := &atomic.Bool{}

	var ctrl *services.Controller
	syncer := services.NewSyncer(gw, rc, hyd, offline, func() *models.Session { return ctrl.Session() }, log)
	ctrl = services.NewController(gw, c, hyd, rc, syncer, cfg.ResetTokenPath, offline, log)

	return &App{
		config:  cfg,
		log:     log,
		store:   s,
		catalog: services.NewCatalog(c, gw, rc, changed, toasts, log),
		syncer:  syncer,
		ctrl:    ctrl,
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if profile := a.ctrl.Initialize(ctx); profile != nil {
		a.userName = profile.Username
		printlnFn("Welcome back,", a.userName)
	}

	unsub := a.catalog.SubscribeToToasts(func(ev models.Event) {
		printlnFn("[" + ev.Kind + "] " + ev.Message)
	})
	defer unsub()

	go a.syncer.Run(ctx, a.config.SyncInterval.Duration)
	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval.Duration)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))

	// Let in-flight persists settle before the database closes.
	a.catalog.Wait()
	_ = a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Session() != nil
}

func (a *App) currentMode() Mode {
	if v := a.mode.Load(); v != nil {
		return v.(Mode)
	}
	return ""
}

func (a *App) status() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

func (a *App) setMode(mode Mode) {
	if a.currentMode() != mode {
		a.mode.Store(mode)
		printlnFn("Switched to", string(mode), "mode")
	}
}

func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			reachable := a.ctrl.CheckReachability(pingCtx)
			cancel()

			if reachable {
				a.setMode(ModeOnline)
			} else {
				a.setMode(ModeOffline)
			}

		case <-ctx.Done():
			return
		}
	}
}

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
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NabeelAhmed1721/visionary/internal/config"
	"github.com/NabeelAhmed1721/visionary/internal/generation"
	"github.com/NabeelAhmed1721/visionary/internal/imagegen"
	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/metrics"
	"github.com/NabeelAhmed1721/visionary/internal/post"
	"github.com/NabeelAhmed1721/visionary/internal/report"
	"github.com/NabeelAhmed1721/visionary/internal/server"
	"github.com/NabeelAhmed1721/visionary/internal/store"
	"github.com/NabeelAhmed1721/visionary/internal/tracing"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

// application is everything Run needs to serve and later release.
type application struct {
	handler         http.Handler
	store           store.Store
	shutdownTracing tracing.Shutdown
}

type mainDeps struct {
	loadConfig func() (config.Config, error)
	build      func(context.Context, config.Config) (*application, error)
	notify     func(chan<- os.Signal, ...os.Signal)
	run        func(context.Context, config.Config, *application, <-chan os.Signal, ListenFunc) error
	fatal      func(...any)
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig: config.Load,
		build:      build,
		notify:     signal.Notify,
		run:        Run,
		fatal:      log.Fatal,
	}
}

func realMain(deps mainDeps) {
	cfg, err := deps.loadConfig()
	if err != nil {
		deps.fatal(err)
		return
	}
	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))
	gin.SetMode(cfg.GinMode)

	app, err := deps.build(context.Background(), cfg)
	if err != nil {
		deps.fatal(err)
		return
	}

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, app, signals, nil); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}

// build connects every provider named by cfg and wires the services.
func build(ctx context.Context, cfg config.Config) (*application, error) {
	shutdownTracing, tracingOn, err := tracing.Init(ctx, cfg.OTLPEndpoint, cfg.OTELServiceName)
	if err != nil {
		return nil, err
	}

	s, err := store.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("record store ready", "driver", cfg.StoreDriver)

	gen, err := imagegen.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	host, err := media.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New(prometheus.NewRegistry())
	reporter := report.NewSlog(slog.Default())
	hosted := m.Host(host, cfg.MediaDriver)

	posts := post.NewService(m.Store(s), hosted, "", reporter)
	images := generation.NewService(m.Generator(gen, cfg.ImageProvider), hosted, cfg.GenerationFolder, reporter)

	router := server.New(posts, images, server.Options{
		ClientDir:   cfg.ClientDir,
		Tracing:     tracingOn,
		ServiceName: cfg.OTELServiceName,
		Metrics:     m,
	})
	return &application{handler: router, store: s, shutdownTracing: shutdownTracing}, nil
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

type ListenFunc func(srv *http.Server) error

var defaultListen ListenFunc = func(srv *http.Server) error {
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, app *application, signals <-chan os.Signal, listen ListenFunc) error {
	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.ServerPort)
		errCh <- listen(srv)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.ServerPort, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if app.store != nil {
		if err := app.store.Close(shutdownCtx); err != nil {
			slog.Warn("closing record store failed", "error", err)
		}
	}
	if app.shutdownTracing != nil {
		if err := app.shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("flushing traces failed", "error", err)
		}
	}
	return nil
}

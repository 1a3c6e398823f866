package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "finitefield.org/portfolio-web/internal/config"
    "finitefield.org/portfolio-web/internal/loader"
    "finitefield.org/portfolio-web/internal/observability"
    "finitefield.org/portfolio-web/internal/pages"
    "finitefield.org/portfolio-web/internal/render"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        fmt.Fprintf(os.Stderr, "load config: %v\n", err)
        os.Exit(1)
    }

    // Flags override environment
    flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
    flag.StringVar(&cfg.Site.TemplatesDir, "templates", cfg.Site.TemplatesDir, "templates directory (empty uses the embedded set)")
    flag.StringVar(&cfg.Data.Source, "data", cfg.Data.Source, "portfolio data source: path, http(s) URL or gs://bucket/object")
    flag.BoolVar(&cfg.Site.Dev, "dev", cfg.Site.Dev, "reparse templates on each request and enable /-/reload")
    flag.Parse()

    baseLogger, err := observability.NewLogger(cfg.LogLevel)
    if err != nil {
        fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
        os.Exit(1)
    }
    defer func() {
        _ = baseLogger.Sync()
    }()
    logger := baseLogger.Named("portfolio")

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    a, err := newApp(cfg, logger)
    if err != nil {
        logger.Fatal("failed to initialise", zap.Error(err))
    }

    // Warm the store so the first request does not pay for the fetch.
    res := a.store.Reload(ctx)
    logger.Info("portfolio data loaded",
        zap.String("source", res.Source),
        zap.Bool("fallback", res.Fallback),
    )

    if cfg.Data.Watch {
        if w, err := loader.NewWatcher(a.store, logger.Named("watcher")); err == nil {
            go func() {
                if err := w.Run(ctx); err != nil {
                    logger.Warn("data watcher stopped", zap.Error(err))
                }
            }()
        } else {
            logger.Debug("data watcher disabled", zap.Error(err))
        }
    }

    srv := &http.Server{
        Addr:              cfg.Server.Addr,
        Handler:           newRouter(a),
        ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
        ReadTimeout:       cfg.Server.ReadTimeout,
        WriteTimeout:      cfg.Server.WriteTimeout,
        IdleTimeout:       cfg.Server.IdleTimeout,
    }

    serverLogger := logger.Named("http").With(zap.String("addr", srv.Addr))
    go func() {
        serverLogger.Info("portfolio listening", zap.Bool("dev", cfg.Site.Dev))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            serverLogger.Fatal("http server error", zap.Error(err))
        }
    }()

    <-ctx.Done()
    logger.Info("shutdown signal received; draining requests")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("graceful shutdown failed", zap.Error(err))
    }
}

// app bundles the dependencies shared by handlers.
type app struct {
    cfg      config.Config
    logger   *zap.Logger
    store    *loader.Store
    renderer *render.Renderer
    pages    *pages.Store
    now      func() time.Time
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
    src, err := loader.NewSource(cfg.Data.Source, &http.Client{Timeout: cfg.Data.FetchTimeout})
    if err != nil {
        return nil, err
    }
    l := loader.New(src,
        loader.WithTimeout(cfg.Data.FetchTimeout),
        loader.WithLogger(logger.Named("loader")),
    )
    renderer, err := render.NewRenderer(cfg.Site.TemplatesDir, cfg.Site.Dev)
    if err != nil {
        return nil, err
    }
    pageTTL := 5 * time.Minute
    if cfg.Site.Dev {
        pageTTL = 0
    }
    return &app{
        cfg:      cfg,
        logger:   logger,
        store:    loader.NewStore(l, cfg.Data.TTL),
        renderer: renderer,
        pages:    pages.NewStore(cfg.Site.PagesDir, pageTTL),
        now:      time.Now,
    }, nil
}

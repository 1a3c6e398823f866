package main

import (
    "bytes"
    "encoding/json"
    "errors"
    "io/fs"
    "net/http"
    "os"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"
    "go.uber.org/zap"

    mw "finitefield.org/portfolio-web/internal/middleware"
    "finitefield.org/portfolio-web/internal/observability"
    "finitefield.org/portfolio-web/internal/pages"
    "finitefield.org/portfolio-web/internal/portfolio"
    "finitefield.org/portfolio-web/internal/render"
    "finitefield.org/portfolio-web/public"
)

func newRouter(a *app) http.Handler {
    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    // If deployed behind a trusted reverse proxy/load balancer, RealIP will use
    // X-Forwarded-For to determine the client IP.
    r.Use(middleware.RealIP)
    r.Use(mw.Logger(a.logger.Named("http")))
    r.Use(middleware.Recoverer)
    r.Use(middleware.Compress(5))
    r.Use(middleware.Timeout(30 * time.Second))

    // Health check
    r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "text/plain; charset=utf-8")
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })

    // Static assets: uploaded media on disk first, then the embedded files.
    assets := http.StripPrefix("/assets", mw.AssetsWithCache(assetFS(a.cfg.Site.MediaDir)))
    r.Handle("/assets/*", assets)

    r.Group(func(r chi.Router) {
        r.Use(cors.Handler(cors.Options{
            AllowedOrigins: a.cfg.Server.CORSOrigins,
            AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
            AllowedHeaders: []string{"Accept"},
            MaxAge:         300,
        }))
        r.Get("/data/portfolio-data.json", a.handleData)
    })

    r.Get("/", a.handleHome)
    r.Get("/pages", a.handlePagesIndex)
    r.Get("/pages/{slug}", a.handlePage)

    if a.cfg.Site.Dev {
        r.Post("/-/reload", a.handleReload)
    }
    return r
}

func (a *app) options(r *http.Request, fallback bool) render.Options {
    return render.Options{
        Now:      a.now,
        SiteURL:  a.cfg.Site.URL,
        Path:     r.URL.Path,
        Fallback: fallback,
    }
}

// handleHome renders the portfolio page from the current record.
func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
    res := a.store.Current(r.Context())
    a.render(w, r, render.TemplateHome, render.Build(res.Record, a.options(r, res.Fallback)))
}

func (a *app) handlePage(w http.ResponseWriter, r *http.Request) {
    page, err := a.pages.Get(chi.URLParam(r, "slug"))
    if err != nil {
        if errors.Is(err, pages.ErrNotFound) {
            http.NotFound(w, r)
            return
        }
        observability.FromContext(r.Context()).Error("load page", zap.Error(err))
        http.Error(w, "page unavailable", http.StatusInternalServerError)
        return
    }
    res := a.store.Current(r.Context())
    a.render(w, r, render.TemplateDocument, render.BuildDocument(res.Record, page, a.options(r, res.Fallback)))
}

func (a *app) handlePagesIndex(w http.ResponseWriter, r *http.Request) {
    list, err := a.pages.List()
    if err != nil {
        observability.FromContext(r.Context()).Error("list pages", zap.Error(err))
        http.Error(w, "pages unavailable", http.StatusInternalServerError)
        return
    }
    res := a.store.Current(r.Context())
    a.render(w, r, render.TemplateDocument, render.BuildIndex(res.Record, list, a.options(r, res.Fallback)))
}

// handleData exposes the active record, which is the default record when the
// configured source could not be used.
func (a *app) handleData(w http.ResponseWriter, r *http.Request) {
    res := a.store.Current(r.Context())
    body, err := portfolio.Encode(res.Record)
    if err != nil {
        observability.FromContext(r.Context()).Error("encode record", zap.Error(err))
        http.Error(w, "encode error", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.Header().Set("Cache-Control", "no-cache")
    if res.Fallback {
        w.Header().Set("X-Portfolio-Fallback", "true")
    }
    _, _ = w.Write(body)
}

func (a *app) handleReload(w http.ResponseWriter, r *http.Request) {
    res := a.store.Reload(r.Context())
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    status := "loaded"
    if res.Fallback {
        status = "fallback"
    }
    _ = json.NewEncoder(w).Encode(map[string]string{"status": status, "kind": res.FailureKind()})
}

// render buffers the page so template errors never produce half a document.
func (a *app) render(w http.ResponseWriter, r *http.Request, name string, data any) {
    var buf bytes.Buffer
    if err := a.renderer.Render(&buf, name, data); err != nil {
        observability.FromContext(r.Context()).Error("render", zap.String("template", name), zap.Error(err))
        http.Error(w, "template error", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = buf.WriteTo(w)
}

// layeredFS serves the first layer that has the requested file.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
    var firstErr error
    for _, layer := range l {
        f, err := layer.Open(name)
        if err == nil {
            return f, nil
        }
        if firstErr == nil {
            firstErr = err
        }
    }
    if firstErr == nil {
        firstErr = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
    }
    return nil, firstErr
}

func assetFS(mediaDir string) fs.FS {
    layers := layeredFS{}
    if mediaDir != "" {
        if info, err := os.Stat(mediaDir); err == nil && info.IsDir() {
            layers = append(layers, os.DirFS(mediaDir))
        }
    }
    return append(layers, public.Assets())
}

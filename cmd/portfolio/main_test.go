package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"finitefield.org/portfolio-web/internal/config"
	"finitefield.org/portfolio-web/internal/testutil"
)

const fixture = "../../internal/portfolio/testdata/portfolio-data.json"

// newTestApp builds an app like main() does, from an explicit environment.
func newTestApp(t *testing.T, env map[string]string) *app {
	t.Helper()
	base := map[string]string{
		"PORTFOLIO_DATA_SOURCE": fixture,
		"PORTFOLIO_PAGES_DIR":   t.TempDir(),
		"PORTFOLIO_MEDIA_DIR":   filepath.Join(t.TempDir(), "none"),
	}
	for k, v := range env {
		base[k] = v
	}
	cfg, err := config.Load(config.WithoutSystemEnv(), config.WithEnvFile(""), config.WithEnvMap(base))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	a, err := newApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	a.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	return a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzOK(t *testing.T) {
	rec := get(t, newRouter(newTestApp(t, nil)), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeRendersRecord(t *testing.T) {
	rec := get(t, newRouter(newTestApp(t, nil)), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	if got := testutil.TextOf(doc, "#hero-name"); got != "Alex Rivera" {
		t.Fatalf("hero-name = %q", got)
	}
	if got := testutil.TextOf(doc, "#current-year"); got != "2026" {
		t.Fatalf("current-year = %q", got)
	}
	if n := doc.Find("#skills-grid .skill-card").Length(); n != 3 {
		t.Fatalf("expected 3 skill cards, got %d", n)
	}
	if _, ok := doc.Find("body").Attr("data-default-content"); ok {
		t.Fatalf("real content must not be marked as default")
	}
}

func TestFailuresRenderDefaultContent(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()
	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"personal":`))
	}))
	defer malformed.Close()
	wrongShape := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"skills": "none"}`))
	}))
	defer wrongShape.Close()
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	missingFile := filepath.Join(t.TempDir(), "missing.json")
	sources := map[string]string{
		"missing file":   missingFile,
		"network error":  closedURL + "/data.json",
		"not found":      notFound.URL + "/data.json",
		"malformed body": malformed.URL + "/data.json",
		"shape mismatch": wrongShape.URL + "/data.json",
	}

	var reference string
	for name, src := range sources {
		rec := get(t, newRouter(newTestApp(t, map[string]string{"PORTFOLIO_DATA_SOURCE": src})), "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, rec.Code)
		}
		doc := testutil.ParseHTML(t, rec.Body.Bytes())
		if got := testutil.TextOf(doc, "#hero-name"); got != "Motion Graphics Artist" {
			t.Fatalf("%s: hero-name = %q", name, got)
		}
		if got := testutil.TextOf(doc, "#contact-email"); got != "contact@example.com" {
			t.Fatalf("%s: contact-email = %q", name, got)
		}
		if n := doc.Find("#projects-grid").Children().Length(); n != 0 {
			t.Fatalf("%s: expected no project cards, got %d", name, n)
		}
		if reference == "" {
			reference = rec.Body.String()
		} else if rec.Body.String() != reference {
			t.Fatalf("%s: fallback page differs from the other failure modes", name)
		}
	}
}

func TestDataEndpointWithCORS(t *testing.T) {
	h := newRouter(newTestApp(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/data/portfolio-data.json", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"name": "Alex Rivera"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Portfolio-Fallback") != "" {
		t.Fatalf("fallback header set for real data")
	}
}

func TestAssetsServedWithETag(t *testing.T) {
	rec := get(t, newRouter(newTestApp(t, nil)), "/assets/js/site.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag header")
	}
	if !strings.Contains(rec.Body.String(), "IntersectionObserver") {
		t.Fatalf("unexpected script body")
	}
}

func TestMediaDirOverridesEmbeddedAssets(t *testing.T) {
	media := t.TempDir()
	if err := os.MkdirAll(filepath.Join(media, "projects"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(media, "projects", "thumb.jpg"), []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newRouter(newTestApp(t, map[string]string{"PORTFOLIO_MEDIA_DIR": media}))
	if rec := get(t, h, "/assets/projects/thumb.jpg"); rec.Code != http.StatusOK || rec.Body.String() != "jpg" {
		t.Fatalf("media file not served: %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, h, "/assets/css/site.css"); rec.Code != http.StatusOK {
		t.Fatalf("embedded asset hidden by media dir: %d", rec.Code)
	}
}

func TestPagesRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "colophon.md"), []byte("---\ntitle: Colophon\n---\nHand made.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newRouter(newTestApp(t, map[string]string{"PORTFOLIO_PAGES_DIR": dir}))

	rec := get(t, h, "/pages/colophon")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	if got := testutil.TextOf(doc, ".document-title"); got != "Colophon" {
		t.Fatalf("title = %q", got)
	}

	if rec := get(t, h, "/pages/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = get(t, h, "/pages")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for index, got %d", rec.Code)
	}
	if n := testutil.ParseHTML(t, rec.Body.Bytes()).Find(".document-index a").Length(); n != 1 {
		t.Fatalf("expected 1 indexed page, got %d", n)
	}
}

func TestReloadOnlyInDevMode(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(newTestApp(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/-/reload", nil))
	if rec.Code == http.StatusOK {
		t.Fatalf("reload must not be exposed outside dev mode")
	}

	rec = httptest.NewRecorder()
	newRouter(newTestApp(t, map[string]string{"PORTFOLIO_DEV": "true"})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/-/reload", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"loaded"`) {
		t.Fatalf("unexpected reload body: %s", rec.Body.String())
	}
}

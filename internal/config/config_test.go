package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Data.Source != defaultDataSource {
		t.Errorf("expected default data source, got %s", cfg.Data.Source)
	}
	if cfg.Data.TTL != time.Minute {
		t.Errorf("unexpected data ttl: %s", cfg.Data.TTL)
	}
	if cfg.Data.FetchTimeout != defaultFetchTimeout {
		t.Errorf("unexpected fetch timeout: %s", cfg.Data.FetchTimeout)
	}
	if !cfg.Data.Watch {
		t.Errorf("expected watch enabled by default")
	}
	if cfg.Site.Dev {
		t.Errorf("expected dev mode off by default")
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard cors origin, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                    "9090",
		"PORTFOLIO_DATA_SOURCE":   "https://cdn.example.com/portfolio-data.json",
		"PORTFOLIO_DATA_TTL":      "30s",
		"PORTFOLIO_FETCH_TIMEOUT": "2s",
		"PORTFOLIO_WATCH":         "off",
		"PORTFOLIO_SITE_URL":      "https://alex.example.com/",
		"PORTFOLIO_CORS_ORIGINS":  "https://a.example.com, https://b.example.com",
		"DEV":                     "1",
		"LOG_LEVEL":               "debug",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr from PORT, got %s", cfg.Server.Addr)
	}
	if cfg.Data.TTL != 30*time.Second || cfg.Data.FetchTimeout != 2*time.Second {
		t.Errorf("unexpected durations: ttl=%s timeout=%s", cfg.Data.TTL, cfg.Data.FetchTimeout)
	}
	if cfg.Data.Watch {
		t.Errorf("expected watch disabled")
	}
	if cfg.Site.URL != "https://alex.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.URL)
	}
	if !cfg.Site.Dev {
		t.Errorf("expected DEV fallback to enable dev mode")
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected cors origins: %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport PORTFOLIO_ADDR=127.0.0.1:7000\nPORTFOLIO_PAGES_DIR=\"pages\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("expected addr from .env, got %s", cfg.Server.Addr)
	}
	if cfg.Site.PagesDir != "pages" {
		t.Errorf("expected quotes trimmed, got %s", cfg.Site.PagesDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	env := map[string]string{
		"PORTFOLIO_DATA_TTL":      "-1s",
		"PORTFOLIO_FETCH_TIMEOUT": "0s",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "Data.TTL" || fields[1] != "Data.FetchTimeout" {
		t.Fatalf("unexpected invalid fields: %v", fields)
	}
}

func TestLoadReportsUnparseableValues(t *testing.T) {
	env := map[string]string{
		"PORTFOLIO_DATA_TTL": "soon",
		"PORTFOLIO_WATCH":    "maybe",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "PORTFOLIO_DATA_TTL" || fields[1] != "PORTFOLIO_WATCH" {
		t.Fatalf("unexpected invalid fields: %v", fields)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	if _, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultDataSource    = "data/portfolio-data.json"
	defaultDataTTL       = time.Minute
	defaultFetchTimeout  = 10 * time.Second
	defaultPagesDir      = "content/pages"
	defaultMediaDir      = "public/assets"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultHeaderTimeout = 10 * time.Second
	defaultLogLevel      = "info"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Site     SiteConfig
	LogLevel string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	CORSOrigins       []string
}

// DataConfig controls where the portfolio document comes from and how long a
// loaded copy is reused.
type DataConfig struct {
	Source       string
	TTL          time.Duration
	FetchTimeout time.Duration
	Watch        bool
}

// SiteConfig holds rendering settings.
type SiteConfig struct {
	URL          string
	Dev          bool
	TemplatesDir string
	PagesDir     string
	MediaDir     string
}

// ValidationError is returned when configuration values are unusable.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration. Lookups prefer the explicit map, then the
// process environment, then the .env file.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := readDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	e := &env{options: options, dotEnv: dotEnv}

	// PORTFOLIO_PORT wins over the platform-provided PORT.
	port := e.str("PORTFOLIO_PORT", e.str("PORT", defaultPort))

	cfg := Config{
		Server: ServerConfig{
			Addr:              e.str("PORTFOLIO_ADDR", ":"+port),
			ReadTimeout:       e.duration("PORTFOLIO_READ_TIMEOUT", defaultReadTimeout),
			ReadHeaderTimeout: e.duration("PORTFOLIO_READ_HEADER_TIMEOUT", defaultHeaderTimeout),
			WriteTimeout:      e.duration("PORTFOLIO_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       e.duration("PORTFOLIO_IDLE_TIMEOUT", defaultIdleTimeout),
			CORSOrigins:       e.list("PORTFOLIO_CORS_ORIGINS", []string{"*"}),
		},
		Data: DataConfig{
			Source:       e.str("PORTFOLIO_DATA_SOURCE", defaultDataSource),
			TTL:          e.duration("PORTFOLIO_DATA_TTL", defaultDataTTL),
			FetchTimeout: e.duration("PORTFOLIO_FETCH_TIMEOUT", defaultFetchTimeout),
			Watch:        e.boolean("PORTFOLIO_WATCH", true),
		},
		Site: SiteConfig{
			URL:          strings.TrimRight(e.str("PORTFOLIO_SITE_URL", ""), "/"),
			Dev:          e.boolean("PORTFOLIO_DEV", e.boolean("DEV", false)),
			TemplatesDir: e.str("PORTFOLIO_TEMPLATES_DIR", ""),
			PagesDir:     e.str("PORTFOLIO_PAGES_DIR", defaultPagesDir),
			MediaDir:     e.str("PORTFOLIO_MEDIA_DIR", defaultMediaDir),
		},
		LogLevel: e.str("LOG_LEVEL", defaultLogLevel),
	}

	invalid := append(e.malformed, validate(cfg)...)
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func validate(cfg Config) []string {
	var invalid []string
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		invalid = append(invalid, "Server.Addr")
	}
	if strings.TrimSpace(cfg.Data.Source) == "" {
		invalid = append(invalid, "Data.Source")
	}
	if cfg.Data.TTL < 0 {
		invalid = append(invalid, "Data.TTL")
	}
	if cfg.Data.FetchTimeout <= 0 {
		invalid = append(invalid, "Data.FetchTimeout")
	}
	return invalid
}

// readDotEnv parses path with godotenv. A missing file is not an error.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

// env resolves keys across the configured layers and remembers keys whose
// values could not be parsed.
type env struct {
	options   loaderOptions
	dotEnv    map[string]string
	malformed []string
}

func (e *env) lookup(key string) (string, bool) {
	if v, ok := e.options.envMap[key]; ok {
		return v, true
	}
	if e.options.useSystemEnv {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
	}
	v, ok := e.dotEnv[key]
	return v, ok
}

func (e *env) str(key, fallback string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.malformed = append(e.malformed, key)
		return fallback
	}
	return d
}

func (e *env) boolean(key string, fallback bool) bool {
	switch strings.ToLower(e.str(key, "")) {
	case "":
		return fallback
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		e.malformed = append(e.malformed, key)
		return fallback
	}
}

func (e *env) list(key string, fallback []string) []string {
	raw := e.str(key, "")
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

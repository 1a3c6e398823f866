// Package loader fetches the portfolio record and substitutes the built-in
// default whenever the document cannot be used.
package loader

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"finitefield.org/portfolio-web/internal/portfolio"
)

const (
	defaultTimeout = 10 * time.Second
	instrumentName = "finitefield.org/portfolio-web/internal/loader"

	// LoadsMetric counts loads by outcome.
	LoadsMetric = "portfolio.loads"
)

var tracer = otel.Tracer(instrumentName)

// Failure kinds reported in logs and results.
const (
	KindNone      = ""
	KindTransport = "transport"
	KindStatus    = "status"
	KindMalformed = "malformed"
	KindShape     = "shape"
	KindInvalid   = "invalid"
	KindTooLarge  = "too_large"
)

// Result describes the outcome of one load.
type Result struct {
	Record   portfolio.Record
	Fallback bool
	Err      error
	Source   string
	LoadedAt time.Time
}

// FailureKind classifies Err.
func (r Result) FailureKind() string {
	return classify(r.Err)
}

// Loader turns a Source into a usable record.
type Loader struct {
	source  Source
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
	meter   metric.MeterProvider
	loads   metric.Int64Counter
}

// Option customises a Loader.
type Option func(*Loader)

// WithTimeout bounds each fetch. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// WithMeterProvider records load counts on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(l *Loader) {
		if mp != nil {
			l.meter = mp
		}
	}
}

// New constructs a Loader for source.
func New(source Source, opts ...Option) *Loader {
	l := &Loader{
		source:  source,
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.meter == nil {
		l.meter = otel.GetMeterProvider()
	}
	loads, err := l.meter.Meter(instrumentName).Int64Counter(LoadsMetric,
		metric.WithDescription("Portfolio record loads by outcome."),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		l.logger.Warn("loads counter unavailable", zap.Error(err))
	}
	l.loads = loads
	return l
}

// Source returns the configured source.
func (l *Loader) Source() Source { return l.source }

// Load fetches and decodes the record. It never fails: any transport error,
// non-success status, malformed body or shape mismatch yields the default
// record with Fallback set and Err describing the cause.
func (l *Loader) Load(ctx context.Context) Result {
	name := ""
	if l.source != nil {
		name = l.source.Name()
	}
	ctx, span := tracer.Start(ctx, "loader.Load")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.source", name))

	res := Result{Source: name, LoadedAt: l.now()}
	rec, err := l.fetch(ctx)
	kind := classify(err)
	l.count(ctx, name, err != nil, kind)
	if err != nil {
		l.logger.Warn("portfolio data unavailable, using default content",
			zap.String("source", name),
			zap.String("kind", kind),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		span.SetAttributes(attribute.Bool("portfolio.fallback", true))
		res.Record = portfolio.Default()
		res.Fallback = true
		res.Err = err
		return res
	}
	span.SetAttributes(attribute.Bool("portfolio.fallback", false))
	res.Record = rec
	return res
}

func (l *Loader) count(ctx context.Context, source string, fallback bool, kind string) {
	if l.loads == nil {
		return
	}
	if kind == KindNone {
		kind = "ok"
	}
	l.loads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.Bool("fallback", fallback),
		attribute.String("kind", kind),
	))
}

func (l *Loader) fetch(ctx context.Context) (portfolio.Record, error) {
	if l.source == nil {
		return portfolio.Record{}, errors.New("loader: no source configured")
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return portfolio.Record{}, err
	}
	return portfolio.Decode(data)
}

func classify(err error) string {
	if err == nil {
		return KindNone
	}
	var statusErr *StatusError
	var shapeErr *portfolio.ShapeError
	var validationErr *portfolio.ValidationError
	switch {
	case errors.As(err, &statusErr):
		return KindStatus
	case errors.Is(err, ErrTooLarge):
		return KindTooLarge
	case errors.Is(err, portfolio.ErrMalformed):
		return KindMalformed
	case errors.As(err, &shapeErr):
		return KindShape
	case errors.As(err, &validationErr):
		return KindInvalid
	default:
		return KindTransport
	}
}

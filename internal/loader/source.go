package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
)

// DefaultPath is the data file location relative to the working directory.
const DefaultPath = "data/portfolio-data.json"

// maxBody bounds the size of a fetched record.
const maxBody = 4 << 20

// ErrTooLarge is returned when a record exceeds maxBody bytes.
var ErrTooLarge = errors.New("loader: record too large")

// readLimited reads r fully, failing instead of truncating when it holds more
// than maxBody bytes.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBody+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, maxBody)
	}
	return data, nil
}

// Source yields the raw bytes of the portfolio record.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("loader: %s returned status %d", e.URL, e.Code)
}

// FileSource reads the record from a local path.
type FileSource struct {
	Path string
}

// Fetch reads the whole file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Name())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, s.Name())
}

// Name returns the file path.
func (s FileSource) Name() string {
	if strings.TrimSpace(s.Path) == "" {
		return DefaultPath
	}
	return s.Path
}

// HTTPSource fetches the record with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch issues the request. Any status outside 2xx is a *StatusError.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: s.URL, Code: resp.StatusCode}
	}
	return readLimited(resp.Body, s.URL)
}

// Name returns the URL.
func (s HTTPSource) Name() string { return s.URL }

// GCSSource reads the record from a Cloud Storage object.
type GCSSource struct {
	Bucket string
	Object string
	Client *gcs.Client
}

// Fetch reads the object. Without an injected client one is created with
// application default credentials and closed afterwards.
func (s GCSSource) Fetch(ctx context.Context) ([]byte, error) {
	if strings.TrimSpace(s.Bucket) == "" || strings.TrimSpace(s.Object) == "" {
		return nil, errors.New("loader: gcs bucket and object are required")
	}
	client := s.Client
	if client == nil {
		c, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("loader: gcs client: %w", err)
		}
		defer c.Close()
		client = c
	}
	r, err := client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readLimited(r, s.Name())
}

// Name returns the gs:// URI.
func (s GCSSource) Name() string { return "gs://" + s.Bucket + "/" + s.Object }

// NewSource picks a source from a location: gs://bucket/object, http(s) URLs,
// file:// URIs or a local path. Relative URLs are not supported server-side.
func NewSource(raw string, httpClient *http.Client) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FileSource{Path: DefaultPath}, nil
	}
	switch {
	case strings.HasPrefix(raw, "gs://"):
		rest := strings.TrimPrefix(raw, "gs://")
		bucket, object, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || object == "" {
			return nil, fmt.Errorf("loader: invalid gcs source %q", raw)
		}
		return GCSSource{Bucket: bucket, Object: object}, nil
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		if _, err := url.Parse(raw); err != nil {
			return nil, fmt.Errorf("loader: invalid url %q: %w", raw, err)
		}
		return HTTPSource{URL: raw, Client: httpClient}, nil
	case strings.HasPrefix(raw, "file://"):
		return FileSource{Path: strings.TrimPrefix(raw, "file://")}, nil
	default:
		return FileSource{Path: raw}, nil
	}
}

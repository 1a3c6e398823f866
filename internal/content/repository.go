package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/oklog/ulid/v2"

	"finitefield.org/portfolio-web/internal/portfolio"
)

// Default locations, relative to the site root.
const (
	DefaultDataFile  = "data/portfolio-data.json"
	DefaultBackupDir = "data/backups"
	DefaultMediaDir  = "public/assets"

	backupPrefix = "portfolio-data_"
)

// Repository reads and writes the portfolio data file.
type Repository struct {
	DataFile  string
	BackupDir string
	MediaDir  string

	newID func() ulid.ULID
}

// NewRepository returns a Repository; empty arguments use the defaults.
func NewRepository(dataFile, backupDir, mediaDir string) *Repository {
	if dataFile == "" {
		dataFile = DefaultDataFile
	}
	if backupDir == "" {
		backupDir = DefaultBackupDir
	}
	if mediaDir == "" {
		mediaDir = DefaultMediaDir
	}
	return &Repository{DataFile: dataFile, BackupDir: backupDir, MediaDir: mediaDir, newID: ulid.Make}
}

// Load reads and decodes the data file. Unlike the site loader it never
// substitutes defaults: editing a broken file must fail loudly.
func (r *Repository) Load() (portfolio.Record, error) {
	data, err := os.ReadFile(r.DataFile)
	if err != nil {
		return portfolio.Record{}, fmt.Errorf("content: read %s: %w", r.DataFile, err)
	}
	rec, err := portfolio.Decode(data)
	if err != nil {
		return portfolio.Record{}, fmt.Errorf("content: %s: %w", r.DataFile, err)
	}
	return rec, nil
}

// Save validates rec, backs up the current file and atomically replaces it.
// The returned path is the backup, or empty when there was nothing to back up.
func (r *Repository) Save(rec portfolio.Record) (string, error) {
	if err := portfolio.Validate(rec); err != nil {
		return "", err
	}
	body, err := portfolio.Encode(rec)
	if err != nil {
		return "", err
	}
	backup, err := r.Backup()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(r.DataFile), 0o755); err != nil {
		return "", fmt.Errorf("content: create data dir: %w", err)
	}
	if err := atomic.WriteFile(r.DataFile, bytes.NewReader(body)); err != nil {
		return "", fmt.Errorf("content: write %s: %w", r.DataFile, err)
	}
	return backup, nil
}

// Backup copies the current data file into the backup directory.
func (r *Repository) Backup() (string, error) {
	current, err := os.ReadFile(r.DataFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("content: read %s: %w", r.DataFile, err)
	}
	if err := os.MkdirAll(r.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("content: create backup dir: %w", err)
	}
	dest := filepath.Join(r.BackupDir, backupPrefix+r.newID().String()+".json")
	if err := atomic.WriteFile(dest, bytes.NewReader(current)); err != nil {
		return "", fmt.Errorf("content: write backup: %w", err)
	}
	return dest, nil
}

// BackupInfo describes one backup file.
type BackupInfo struct {
	ID        string
	Path      string
	CreatedAt time.Time
}

// Backups lists backups, newest first.
func (r *Repository) Backups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(r.BackupDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), ".json")
		id, err := ulid.ParseStrict(raw)
		if err != nil {
			continue
		}
		out = append(out, BackupInfo{
			ID:        id.String(),
			Path:      filepath.Join(r.BackupDir, name),
			CreatedAt: ulid.Time(id.Time()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Restore replaces the data file with the backup id, backing up the current
// file first.
func (r *Repository) Restore(id string) (string, error) {
	parsed, err := ulid.ParseStrict(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("content: invalid backup id %q: %w", id, err)
	}
	src := filepath.Join(r.BackupDir, backupPrefix+parsed.String()+".json")
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("content: read backup: %w", err)
	}
	rec, err := portfolio.Decode(data)
	if err != nil {
		return "", fmt.Errorf("content: backup %s is not usable: %w", parsed, err)
	}
	return r.Save(rec)
}

// MediaKind selects where an uploaded file goes.
type MediaKind string

const (
	MediaLogo      MediaKind = "logo"
	MediaThumbnail MediaKind = "thumbnail"
	MediaVideo     MediaKind = "video"
)

var mediaRules = map[MediaKind]struct {
	dir  string
	exts []string
}{
	MediaLogo:      {dir: "", exts: []string{".png", ".jpg", ".jpeg", ".svg"}},
	MediaThumbnail: {dir: "projects", exts: []string{".png", ".jpg", ".jpeg", ".webp"}},
	MediaVideo:     {dir: "videos", exts: []string{".mp4", ".webm", ".mov"}},
}

// Upload copies src into the media directory and returns the path the site
// serves it under, e.g. "assets/videos/reel.mp4".
func (r *Repository) Upload(kind MediaKind, src string) (string, error) {
	rule, ok := mediaRules[kind]
	if !ok {
		return "", fmt.Errorf("content: unknown media kind %q", kind)
	}
	name := filepath.Base(src)
	ext := strings.ToLower(filepath.Ext(name))
	allowed := false
	for _, e := range rule.exts {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("content: %s files must be one of %s", kind, strings.Join(rule.exts, ", "))
	}
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("content: open %s: %w", src, err)
	}
	defer f.Close()

	destDir := filepath.Join(r.MediaDir, rule.dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("content: create media dir: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(destDir, name), f); err != nil {
		return "", fmt.Errorf("content: copy %s: %w", name, err)
	}
	return path.Join("assets", rule.dir, name), nil
}

// Package fsstore is the flash-backed file store, expressed over the
// viant/afs abstract storage layer so the same code runs against an
// in-memory scheme in simulation and a real filesystem when needed.
package fsstore

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/exp/slices"
)

// ErrInvalidPath rejects paths that are empty, not rooted at "/" or
// longer than the configured maximum.
var ErrInvalidPath = errors.New("invalid path")

// ErrNotFound is returned for operations on files that do not exist.
var ErrNotFound = errors.New("file not found")

// FileInfo is one row of a directory listing.
type FileInfo struct {
	Name     string
	Size     int
	Modified time.Time
}

// Stats summarizes store usage against the configured capacity.
type Stats struct {
	TotalBytes int
	UsedBytes  int
	FreeBytes  int
	Files      int
}

func (s Stats) UsagePercent() float64 {
	if s.TotalBytes == 0 {
		return 0
	}
	return float64(s.UsedBytes) / float64(s.TotalBytes) * 100
}

// Options configures a Store.
type Options struct {
	// BaseURL is the afs URL the store is rooted at, e.g. "mem://oskit/fs"
	// or "file:///var/lib/oskit".
	BaseURL string
	// TotalBytes is the emulated flash capacity used for statistics.
	TotalBytes int
	// MaxPathLength bounds accepted paths (default 64).
	MaxPathLength int
}

// Store is a bounded, flat-namespace file store.
type Store struct {
	logger  *slog.Logger
	fs      afs.Service
	baseURL string
	total   int
	maxPath int
	mounted bool
}

// New mounts the store, creating the base location when absent.
func New(ctx context.Context, logger *slog.Logger, opts Options) (*Store, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("fsstore requires a base URL")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxPathLength <= 0 {
		opts.MaxPathLength = 64
	}

	s := &Store{
		logger:  logger,
		fs:      afs.New(),
		baseURL: opts.BaseURL,
		total:   opts.TotalBytes,
		maxPath: opts.MaxPathLength,
	}
	if err := s.mount(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) mount(ctx context.Context) error {
	exists, _ := s.fs.Exists(ctx, s.baseURL)
	if !exists {
		if err := s.fs.Create(ctx, s.baseURL, file.DefaultDirOsMode, true); err != nil {
			return errors.Wrapf(err, "mounting %q", s.baseURL)
		}
	}
	s.mounted = true
	s.logger.Info("file store mounted", slog.String("baseURL", s.baseURL))
	return nil
}

func (s *Store) validatePath(path string) error {
	if path == "" || !strings.HasPrefix(path, "/") {
		return errors.Wrapf(ErrInvalidPath, "%q must be rooted at /", path)
	}
	if len(path) > s.maxPath {
		return errors.Wrapf(ErrInvalidPath, "%q exceeds %d characters", path, s.maxPath)
	}
	return nil
}

func (s *Store) urlFor(path string) string {
	return url.Join(s.baseURL, path)
}

// Write stores data at path, replacing any previous content.
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	if err := s.validatePath(path); err != nil {
		return err
	}
	return s.fs.Upload(ctx, s.urlFor(path), file.DefaultFileOsMode, bytes.NewReader(data))
}

// Read returns the full content of the file at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := s.validatePath(path); err != nil {
		return nil, err
	}
	exists, _ := s.fs.Exists(ctx, s.urlFor(path))
	if !exists {
		return nil, errors.Wrapf(ErrNotFound, "%q", path)
	}
	data, err := s.fs.DownloadWithURL(ctx, s.urlFor(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return data, nil
}

// Append extends the file at path, creating it when absent. Flash-style
// stores have no in-place append, so this is read + concatenate + write.
func (s *Store) Append(ctx context.Context, path string, data []byte) error {
	if err := s.validatePath(path); err != nil {
		return err
	}
	existing, err := s.Read(ctx, path)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.Write(ctx, path, append(existing, data...))
}

// Delete removes the file at path.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := s.validatePath(path); err != nil {
		return err
	}
	exists, _ := s.fs.Exists(ctx, s.urlFor(path))
	if !exists {
		return errors.Wrapf(ErrNotFound, "%q", path)
	}
	return s.fs.Delete(ctx, s.urlFor(path))
}

// Exists reports whether a file is present at path.
func (s *Store) Exists(ctx context.Context, path string) bool {
	if s.validatePath(path) != nil {
		return false
	}
	exists, _ := s.fs.Exists(ctx, s.urlFor(path))
	return exists
}

// Rename moves a file from oldPath to newPath.
func (s *Store) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := s.validatePath(oldPath); err != nil {
		return err
	}
	if err := s.validatePath(newPath); err != nil {
		return err
	}
	exists, _ := s.fs.Exists(ctx, s.urlFor(oldPath))
	if !exists {
		return errors.Wrapf(ErrNotFound, "%q", oldPath)
	}
	return s.fs.Move(ctx, s.urlFor(oldPath), s.urlFor(newPath))
}

// List reports every file in the store, sorted by name.
func (s *Store) List(ctx context.Context) ([]FileInfo, error) {
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %q", s.baseURL)
	}

	infos := make([]FileInfo, 0, len(objects))
	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}
		infos = append(infos, FileInfo{
			Name:     "/" + obj.Name(),
			Size:     int(obj.Size()),
			Modified: obj.ModTime(),
		})
	}

	slices.SortFunc(infos, func(a, b FileInfo) bool {
		return a.Name < b.Name
	})
	return infos, nil
}

// Info reports metadata for a single file.
func (s *Store) Info(ctx context.Context, path string) (FileInfo, error) {
	if err := s.validatePath(path); err != nil {
		return FileInfo{}, err
	}
	obj, err := s.object(ctx, path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:     path,
		Size:     int(obj.Size()),
		Modified: obj.ModTime(),
	}, nil
}

func (s *Store) object(ctx context.Context, path string) (storage.Object, error) {
	obj, err := s.fs.Object(ctx, s.urlFor(path))
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%q", path)
	}
	return obj, nil
}

// Format wipes the store and remounts it empty.
func (s *Store) Format(ctx context.Context) error {
	s.logger.Info("formatting file store", slog.String("baseURL", s.baseURL))
	s.mounted = false
	if err := s.fs.Delete(ctx, s.baseURL); err != nil {
		return errors.Wrapf(err, "formatting %q", s.baseURL)
	}
	return s.mount(ctx)
}

// Check probes store health by writing and deleting a test file.
func (s *Store) Check(ctx context.Context) error {
	const probe = "/.fsck"
	if err := s.Write(ctx, probe, []byte("probe")); err != nil {
		return errors.Wrap(err, "health probe write")
	}
	if err := s.Delete(ctx, probe); err != nil {
		return errors.Wrap(err, "health probe delete")
	}
	return nil
}

// Stats sums live file sizes against the configured capacity.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	used := 0
	for _, info := range infos {
		used += info.Size
	}
	free := s.total - used
	if free < 0 {
		free = 0
	}
	return Stats{
		TotalBytes: s.total,
		UsedBytes:  used,
		FreeBytes:  free,
		Files:      len(infos),
	}, nil
}

// Package state persists the address book to a single file on disk.
package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/book"
)

// DefaultPath is the store file used when no other path is configured.
const DefaultPath = "contacts_data.json"

// Sentinel errors for caller-checkable conditions.
var (
	// ErrCorrupt means the store file exists but could not be read or parsed.
	ErrCorrupt = errors.New("state: unreadable store file")
	// ErrPersist means the book could not be written.
	ErrPersist = errors.New("state: save failed")
)

// FileStore keeps the whole book in one file, overwritten on every save.
// The encoding follows the file extension: .yaml/.yml for YAML, JSON otherwise.
type FileStore struct {
	path  string
	codec codec
	log   *zap.Logger
}

// NewFileStore creates a FileStore for path. An empty path means DefaultPath.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, codec: codecFor(path), log: log}
}

// Path returns the store file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store file into a new Book built with opts.
// It never returns a nil Book:
//   - (book, true, nil) when the file was loaded,
//   - (empty, false, nil) when the file does not exist,
//   - (empty, false, err) when the file is unreadable or corrupt; err wraps ErrCorrupt.
func (s *FileStore) Load(opts ...book.Option) (*book.Book, bool, error) {
	b := book.New(opts...)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info("store file not found, starting empty", zap.String("file", s.path))
			return b, false, nil
		}
		return s.fail(opts, fmt.Errorf("%w: reading %s: %w", ErrCorrupt, s.path, err))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.fail(opts, fmt.Errorf("%w: %s is empty", ErrCorrupt, s.path))
	}

	contacts, err := s.codec.decode(data)
	if err != nil {
		return s.fail(opts, fmt.Errorf("%w: parsing %s: %w", ErrCorrupt, s.path, err))
	}

	for _, c := range contacts {
		if err := b.Restore(c); err != nil {
			return s.fail(opts, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.path, err))
		}
	}

	s.log.Info("store loaded", zap.String("file", s.path), zap.Int("contacts", b.Len()))
	return b, true, nil
}

// fail logs a load failure and hands back a fresh empty book.
func (s *FileStore) fail(opts []book.Option, err error) (*book.Book, bool, error) {
	s.log.Warn("store file unusable, starting empty", zap.String("file", s.path), zap.Error(err))
	return book.New(opts...), false, err
}

// Save writes the whole book, replacing the previous file. The data is first
// written to a temporary file in the same directory and then renamed over the
// store file. Errors wrap ErrPersist.
func (s *FileStore) Save(b *book.Book) error {
	start := time.Now()

	data, err := s.codec.encode(b.List())
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory: %w", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrPersist, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrPersist, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrPersist, s.path, err)
	}

	s.log.Info("store saved",
		zap.String("file", s.path),
		zap.Int("contacts", b.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

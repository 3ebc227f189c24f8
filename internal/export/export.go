// Package export writes the address book to external tabular files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNothingToExport = errors.New("export: no contacts to export")
	ErrExport          = errors.New("export: write failed")
)

// Header is the fixed first row of every CSV export.
var Header = []string{"Name", "Phone", "Email", "Address", "Group", "Created", "Updated"}

// fileLayout is the timestamp embedded in export file names.
const fileLayout = "20060102_150405"

// Exporter writes CSV exports into a directory.
type Exporter struct {
	dir string
	now func() time.Time
	log *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time source used to name export files.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter creates an Exporter writing into dir ("" means the working directory).
func NewExporter(dir string, log *zap.Logger, opts ...Option) *Exporter {
	if dir == "" {
		dir = "."
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Exporter{dir: dir, now: time.Now, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileName returns the export file name for the given generation time.
func FileName(t time.Time) string {
	return "contacts_export_" + t.Format(fileLayout) + ".csv"
}

// CSV writes one row per contact, in book order, to a new timestamped file and
// returns its path. The book is not modified.
func (e *Exporter) CSV(b *book.Book) (string, error) {
	contacts := b.List()
	if len(contacts) == 0 {
		return "", ErrNothingToExport
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating directory: %w", ErrExport, err)
	}
	path := filepath.Join(e.dir, FileName(e.now()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}

	if err := writeRows(f, contacts); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%w: writing %s: %w", ErrExport, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: closing %s: %w", ErrExport, path, err)
	}

	e.log.Info("contacts exported", zap.String("file", path), zap.Int("rows", len(contacts)))
	return path, nil
}

func writeRows(f *os.File, contacts []contact.Contact) error {
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, c := range contacts {
		row := []string{
			c.Name,
			contact.FormatPhone(c.Phone),
			c.Email,
			c.Address,
			string(c.Group),
			c.Created.Format(contact.TimeLayout),
			c.Updated.Format(contact.TimeLayout),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

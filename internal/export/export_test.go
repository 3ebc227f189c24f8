package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

var fixed = time.Date(2026, 10, 15, 14, 3, 9, 0, time.UTC)

func fixedClock() time.Time { return fixed }

func TestFileName(t *testing.T) {
	if got, want := FileName(fixed), "contacts_export_20261015_140309.csv"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestExporter_CSV(t *testing.T) {
	// Given a book with two contacts, one without optional fields
	b := book.New(book.WithClock(fixedClock))
	if _, err := b.Add("Anna", contact.Input{Phone: "1234567890", Email: "anna@example.com", Address: "1 Main St, Apt 2", Group: "Friends"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Add("Bob", contact.Input{Phone: "11234567890", Group: "Work"}); err != nil {
		t.Fatal(err)
	}
	before := b.List()

	dir := t.TempDir()
	e := NewExporter(dir, nil, WithClock(fixedClock))

	// When exported
	path, err := e.CSV(b)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	// Then the file is named by timestamp and holds header plus rows
	if want := filepath.Join(dir, "contacts_export_20261015_140309.csv"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	stamp := fixed.Format(contact.TimeLayout)
	want := [][]string{
		Header,
		{"Anna", "(123) 456-7890", "anna@example.com", "1 Main St, Apt 2", "Friends", stamp, stamp},
		{"Bob", "+1 (123) 456-7890", "", "", "Work", stamp, stamp},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	// And the book is untouched
	if diff := cmp.Diff(before, b.List()); diff != "" {
		t.Errorf("book changed by export (-before +after):\n%s", diff)
	}
}

func TestExporter_CSV_EmptyBook(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	_, err := e.CSV(book.New())

	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("CSV() error = %v, want ErrNothingToExport", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

func TestExporter_CSV_WriteFailure(t *testing.T) {
	// Given an export directory that is actually a file
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	b := book.New()
	if _, err := b.Add("Anna", contact.Input{Phone: "1234567890"}); err != nil {
		t.Fatal(err)
	}

	_, err := NewExporter(blocker, nil).CSV(b)

	if !errors.Is(err, ErrExport) {
		t.Fatalf("CSV() error = %v, want ErrExport", err)
	}
}

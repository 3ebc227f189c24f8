// Package book holds the in-memory address book and the operations over it.
//
// A Book is an ordered mapping from contact name to contact. Iteration order
// is insertion order. A Book is owned by a single goroutine; it does no locking.
package book

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound      = errors.New("book: contact not found")
	ErrDuplicateName = errors.New("book: contact already exists")
)

// RecentWindow is the default look-back used by Statistics.
const RecentWindow = 7 * 24 * time.Hour

// Book is the address book. The zero value is not usable; call New.
type Book struct {
	contacts map[string]contact.Contact
	order    []string
	now      func() time.Time
	recent   time.Duration
}

// Option configures a Book.
type Option func(*Book)

// WithClock overrides the time source used to stamp Created and Updated.
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		if now != nil {
			b.now = now
		}
	}
}

// WithRecentWindow overrides how far back Statistics counts a contact as
// recently updated. Non-positive values are ignored.
func WithRecentWindow(d time.Duration) Option {
	return func(b *Book) {
		if d > 0 {
			b.recent = d
		}
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		contacts: make(map[string]contact.Contact),
		now:      time.Now,
		recent:   RecentWindow,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.order)
}

// Recent returns the look-back Statistics uses for its recent-update count.
func (b *Book) Recent() time.Duration {
	return b.recent
}

// Get returns the contact stored under name.
func (b *Book) Get(name string) (contact.Contact, bool) {
	c, ok := b.contacts[name]
	return c, ok
}

// Add validates in and inserts a new contact under name.
// An existing name is never overwritten: ErrDuplicateName is returned and the
// stored record is left as is.
func (b *Book) Add(name string, in contact.Input) (contact.Contact, error) {
	if _, exists := b.contacts[name]; exists {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	c, err := contact.New(name, in, b.now())
	if err != nil {
		return contact.Contact{}, err
	}
	b.insert(c)
	return c, nil
}

// Update applies p to the contact stored under name. Every supplied field is
// validated before any is applied, so a rejected patch changes nothing.
func (b *Book) Update(name string, p contact.Patch) (contact.Contact, error) {
	current, ok := b.contacts[name]
	if !ok {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	next, err := current.Apply(p, b.now())
	if err != nil {
		return contact.Contact{}, err
	}
	b.contacts[name] = next
	return next, nil
}

// Delete removes the contact stored under name and returns it.
func (b *Book) Delete(name string) (contact.Contact, error) {
	c, ok := b.contacts[name]
	if !ok {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(b.contacts, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
	return c, nil
}

// Restore inserts c exactly as given, keeping its timestamps. It is used when
// loading a persisted book. A name already present returns ErrDuplicateName.
func (b *Book) Restore(c contact.Contact) error {
	if c.Name == "" {
		return &contact.ValidationError{Field: contact.FieldName, Reason: "cannot be empty"}
	}
	if _, exists := b.contacts[c.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	b.insert(c)
	return nil
}

// List returns every contact in insertion order.
func (b *Book) List() []contact.Contact {
	out := make([]contact.Contact, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.contacts[name])
	}
	return out
}

// Search returns the contacts whose name contains term, ignoring case, in
// insertion order. An empty term matches every contact.
func (b *Book) Search(term string) []contact.Contact {
	needle := strings.ToLower(term)
	var out []contact.Contact
	for _, name := range b.order {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, b.contacts[name])
		}
	}
	return out
}

// Clone returns an independent copy of b with the same order and settings.
func (b *Book) Clone() *Book {
	out := &Book{
		contacts: make(map[string]contact.Contact, len(b.contacts)),
		order:    slices.Clone(b.order),
		now:      b.now,
		recent:   b.recent,
	}
	for name, c := range b.contacts {
		out.contacts[name] = c
	}
	return out
}

func (b *Book) insert(c contact.Contact) {
	b.contacts[c.Name] = c
	b.order = append(b.order, c.Name)
}

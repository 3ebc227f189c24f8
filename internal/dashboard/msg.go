// Package dashboard implements a two-pane TUI for browsing the address book:
// a filterable contact table on the left and the selected contact's detail on
// the right. Separate from internal/shell which runs the numbered menu.
package dashboard

import "github.com/smileynet/rolodex/internal/book"

// Mode represents the current dashboard view mode.
type Mode int

const (
	ModeBrowse  Mode = iota // Moving through the contact table.
	ModeFilter              // Typing a name filter.
	ModeConfirm             // Waiting for a y/n answer to a delete.
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // Left pane (contact table) has focus.
	PaneRight              // Right pane (detail viewport) has focus.
)

// --- Consumer-side interfaces ---

// Saver persists the whole book.
type Saver interface {
	Save(b *book.Book) error
}

// --- tea.Msg types ---

// SavedMsg carries the result of a background save.
type SavedMsg struct {
	Err error
}

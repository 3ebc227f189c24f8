package dashboard

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// Fixed column widths; the name column takes what is left.
const (
	phoneColWidth = 16
	groupColWidth = 8
	// cellPadding is the horizontal padding the table adds per column.
	cellPadding = 2
)

// browseState manages the filtered contact list, its table, and the filter
// input for the left pane.
type browseState struct {
	visible []contact.Contact
	table   table.Model
	filter  textinput.Model
}

// newBrowseState returns a browseState with an empty table and filter.
func newBrowseState() browseState {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name"
	t := table.New(
		table.WithColumns(columns(MinLeftWidth)),
		table.WithFocused(true),
	)
	return browseState{table: t, filter: ti}
}

// columns lays out the table columns for a pane of the given inner width.
func columns(width int) []table.Column {
	name := width - phoneColWidth - groupColWidth - 3*cellPadding
	if name < 10 {
		name = 10
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Phone", Width: phoneColWidth},
		{Title: "Group", Width: groupColWidth},
	}
}

// reload rebuilds the visible rows from b, applying the current filter and
// keeping the cursor in range.
func (bs browseState) reload(b *book.Book) browseState {
	bs.visible = b.Search(bs.filter.Value())
	rows := make([]table.Row, len(bs.visible))
	for i, c := range bs.visible {
		rows[i] = table.Row{c.Name, contact.FormatPhone(c.Phone), string(c.Group)}
	}
	bs.table.SetRows(rows)
	if n := len(rows); n > 0 {
		if cur := bs.table.Cursor(); cur < 0 || cur >= n {
			bs.table.SetCursor(min(max(cur, 0), n-1))
		}
	}
	return bs
}

// selected returns the contact under the cursor.
func (bs browseState) selected() (contact.Contact, bool) {
	i := bs.table.Cursor()
	if i < 0 || i >= len(bs.visible) {
		return contact.Contact{}, false
	}
	return bs.visible[i], true
}

// resize fits the table and filter into a pane of the given inner size.
func (bs browseState) resize(width, height int) browseState {
	bs.table.SetColumns(columns(width))
	bs.table.SetWidth(width)
	bs.table.SetHeight(max(height, 1))
	bs.filter.Width = max(width-len(bs.filter.Prompt)-1, 1)
	return bs
}

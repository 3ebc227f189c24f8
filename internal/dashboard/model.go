package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// statusBarHeight is the number of lines reserved for the status line.
const statusBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// filterLineHeight is the line above the table holding the filter input.
const filterLineHeight = 1

// Model is the root Bubble Tea model for the contact browser.
// It manages a two-pane layout with mode-based routing and focus management.
type Model struct {
	book    *book.Book
	saver   Saver
	mode    Mode
	focus   Focus
	width   int
	height  int
	browse  browseState
	confirm confirmState
	detail  viewport.Model
	help    help.Model
	status  string
	failed  bool
}

// NewModel creates a browser over b in browse mode with left-pane focus.
// Deletions are persisted through saver.
func NewModel(b *book.Book, saver Saver) Model {
	m := Model{
		book:   b,
		saver:  saver,
		mode:   ModeBrowse,
		focus:  PaneLeft,
		browse: newBrowseState(),
		detail: viewport.New(0, 0),
		help:   help.New(),
	}
	m.browse = m.browse.reload(b)
	return m.withDetail()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		leftWidth, rightWidth := PaneWidths(msg.Width)
		m.browse = m.browse.resize(max(leftWidth-borderChrome, 0), m.contentHeight()-filterLineHeight)
		m.detail.Width = max(rightWidth-borderChrome, 0)
		m.detail.Height = m.contentHeight()
		return m.withDetail(), nil

	case SavedMsg:
		if msg.Err != nil {
			m.status, m.failed = "Save failed: "+msg.Err.Error(), true
		} else {
			m.status, m.failed = "Saved.", false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeFilter:
			return m.handleFilterKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleKey(msg)
		}
	}

	return m, nil
}

// handleKey processes key messages in browse mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := BrowseKeyMap()
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.Tab):
		if m.focus == PaneLeft {
			m.focus = PaneRight
			m.browse.table.Blur()
		} else {
			m.focus = PaneLeft
			m.browse.table.Focus()
		}
		return m, nil
	case key.Matches(msg, km.Filter):
		m.mode = ModeFilter
		m.browse.table.Blur()
		cmd := m.browse.filter.Focus()
		return m, cmd
	case key.Matches(msg, km.Delete):
		if c, ok := m.browse.selected(); ok {
			m.confirm = confirmState{target: c}
			m.mode = ModeConfirm
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == PaneRight {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	m.browse.table, cmd = m.browse.table.Update(msg)
	return m.withDetail(), cmd
}

// handleFilterKey feeds keystrokes to the filter input and refilters the
// table on every change.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := FilterKeyMap()
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, km.Clear):
		m.browse.filter.SetValue("")
		m.browse = m.browse.reload(m.book)
		fallthrough
	case key.Matches(msg, km.Apply):
		m.mode = ModeBrowse
		m.focus = PaneLeft
		m.browse.filter.Blur()
		m.browse.table.Focus()
		return m.withDetail(), nil
	}

	var cmd tea.Cmd
	m.browse.filter, cmd = m.browse.filter.Update(msg)
	m.browse = m.browse.reload(m.book)
	return m.withDetail(), cmd
}

// handleConfirmKey resolves a pending delete.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := ConfirmKeyMap()
	switch {
	case key.Matches(msg, km.Yes):
		m.mode = ModeBrowse
		name := m.confirm.target.Name
		if _, err := m.book.Delete(name); err != nil {
			m.status, m.failed = err.Error(), true
			return m, nil
		}
		m.status, m.failed = fmt.Sprintf("Deleted %s.", name), false
		m.browse = m.browse.reload(m.book)
		return m.withDetail(), saveCmd(m.saver, m.book.Clone())
	case key.Matches(msg, km.No), msg.Type == tea.KeyCtrlC:
		m.mode = ModeBrowse
		m.status, m.failed = "Deletion cancelled.", false
		return m, nil
	}
	return m, nil
}

// saveCmd persists a snapshot of the book off the update loop.
func saveCmd(saver Saver, snapshot *book.Book) tea.Cmd {
	if saver == nil {
		return nil
	}
	return func() tea.Msg {
		return SavedMsg{Err: saver.Save(snapshot)}
	}
}

// withDetail refreshes the detail viewport for the selected contact.
func (m Model) withDetail() Model {
	m.detail.SetContent(m.detailContent())
	m.detail.GotoTop()
	return m
}

func (m Model) detailContent() string {
	c, ok := m.browse.selected()
	if !ok {
		if m.book.Len() == 0 {
			return "No contacts in your address book."
		}
		return "No contacts match the filter."
	}
	orNone := func(s string) string {
		if s == "" {
			return mutedStyle.Render("(none)")
		}
		return s
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", labelStyle.Render(c.Name))
	fmt.Fprintf(&b, "Phone:   %s\n", contact.FormatPhone(c.Phone))
	fmt.Fprintf(&b, "Email:   %s\n", orNone(c.Email))
	fmt.Fprintf(&b, "Address: %s\n", orNone(c.Address))
	fmt.Fprintf(&b, "Group:   %s\n\n", GroupBadge(c.Group))
	b.WriteString(mutedStyle.Render("Created: "+c.Created.Format(contact.TimeLayout)) + "\n")
	b.WriteString(mutedStyle.Render("Updated: " + c.Updated.Format(contact.TimeLayout)))
	return b.String()
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, the status line and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - statusBarHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(max(leftWidth-borderChrome, 0)).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(max(rightWidth-borderChrome, 0)).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.viewLeft())
	rightPane := rightStyle.Render(m.viewRight())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewStatus(), helpView)
}

// viewLeft renders the filter line above the contact table.
func (m Model) viewLeft() string {
	var filterLine string
	switch {
	case m.mode == ModeFilter:
		filterLine = m.browse.filter.View()
	case m.browse.filter.Value() != "":
		filterLine = filterStyle.Render("filter: " + m.browse.filter.Value())
	default:
		filterLine = mutedStyle.Render(fmt.Sprintf("%d contact(s)", m.book.Len()))
	}
	return filterLine + "\n" + m.browse.table.View()
}

// viewRight renders the detail pane, or the delete confirmation.
func (m Model) viewRight() string {
	if m.mode == ModeConfirm {
		return m.confirm.View()
	}
	return m.detail.View()
}

func (m Model) viewStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.failed:
		return errStyle.Render(m.status)
	default:
		return okStyle.Render(m.status)
	}
}

package dashboard

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// recordingSaver counts saves and remembers the last saved contacts.
type recordingSaver struct {
	mu    sync.Mutex
	saves int
	last  []contact.Contact
	err   error
}

func (r *recordingSaver) Save(b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = b.List()
	return r.err
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func testBook(t *testing.T) *book.Book {
	t.Helper()
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local)
	b := book.New(book.WithClock(func() time.Time { return at }))
	seed := []struct {
		name string
		in   contact.Input
	}{
		{"Anna Smith", contact.Input{Phone: "1234567890", Email: "anna@example.com", Group: "Friends"}},
		{"Bob Jones", contact.Input{Phone: "5551234567", Group: "Work"}},
		{"Marianne Lee", contact.Input{Phone: "4445556666", Address: "3 Oak Ave", Group: "Family"}},
	}
	for _, s := range seed {
		if _, err := b.Add(s.name, s.in); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func newSizedModel(t *testing.T, b *book.Book, saver Saver, w, h int) Model {
	t.Helper()
	m := NewModel(b, saver)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

// press sends a key to m and returns the updated model and command.
func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(k)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends each rune of s as a separate key press.
func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

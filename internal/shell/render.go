package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

const ruleWidth = 50

// Banner writes a title framed by rules.
func Banner(w io.Writer, st Styles, title string) {
	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, st.Title.Render(title), rule)
}

// RenderContact writes one numbered contact. The detailed form adds email and
// address when present.
func RenderContact(w io.Writer, st Styles, n int, c contact.Contact, detailed bool) {
	_, _ = fmt.Fprintf(w, "%d. %s\n", n, st.Label.Render(c.Name))
	_, _ = fmt.Fprintf(w, "   Phone: %s\n", contact.FormatPhone(c.Phone))
	if detailed {
		if c.Email != "" {
			_, _ = fmt.Fprintf(w, "   Email: %s\n", c.Email)
		}
		if c.Address != "" {
			_, _ = fmt.Fprintf(w, "   Address: %s\n", c.Address)
		}
	}
	_, _ = fmt.Fprintf(w, "   Group: %s\n", c.Group)
	_, _ = fmt.Fprintf(w, "   %s\n\n", st.Muted.Render("Updated: "+c.Updated.Format(contact.TimeLayout)))
}

// RenderResults writes search results with full detail.
func RenderResults(w io.Writer, st Styles, results []contact.Contact) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts found.")
		return
	}
	_, _ = fmt.Fprintf(w, "\nFound %d contact(s):\n%s\n", len(results), strings.Repeat("-", ruleWidth))
	for i, c := range results {
		RenderContact(w, st, i+1, c, true)
	}
}

// RenderAll writes the whole book in insertion order.
func RenderAll(w io.Writer, st Styles, contacts []contact.Contact) {
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "\nNo contacts in your address book.")
		return
	}
	Banner(w, st, fmt.Sprintf("ALL CONTACTS (%d total)", len(contacts)))
	for i, c := range contacts {
		RenderContact(w, st, i+1, c, false)
	}
}

// RenderStats writes totals, counts for non-empty groups and the recent-update count.
// window is the look-back the recent count was computed with.
func RenderStats(w io.Writer, st Styles, s book.Stats, window time.Duration) {
	if s.Total == 0 {
		_, _ = fmt.Fprintln(w, "\nNo contacts to show statistics for.")
		return
	}
	Banner(w, st, "CONTACT STATISTICS")
	_, _ = fmt.Fprintf(w, "Total Contacts: %d\n", s.Total)
	_, _ = fmt.Fprintln(w, "\nContacts by Group:")
	for _, gc := range s.ByGroup {
		if gc.Count == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "  • %s: %d contact(s)\n", gc.Group, gc.Count)
	}
	_, _ = fmt.Fprintf(w, "\nRecently Updated (last %s): %d\n", describeWindow(window), s.RecentlyUpdated)
}

func describeWindow(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	switch {
	case days == 1 && d%(24*time.Hour) == 0:
		return "1 day"
	case days >= 1 && d%(24*time.Hour) == 0:
		return fmt.Sprintf("%d days", days)
	default:
		return d.String()
	}
}

package dashboard

import (
	"fmt"
	"strings"

	"github.com/smileynet/rolodex/internal/contact"
)

// confirmState holds the contact awaiting a delete confirmation.
type confirmState struct {
	target contact.Contact
}

// View renders the confirmation prompt.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete %s?\n", labelStyle.Render(cs.target.Name))
	fmt.Fprintf(&b, "\n  Phone: %s", contact.FormatPhone(cs.target.Phone))
	if cs.target.Email != "" {
		fmt.Fprintf(&b, "\n  Email: %s", cs.target.Email)
	}
	fmt.Fprintf(&b, "\n  Group: %s", cs.target.Group)
	b.WriteString("\n\n  [y] Delete   [n] Cancel")
	return b.String()
}

package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/contact"
)

// MinLeftWidth is the minimum character width for the left pane.
const MinLeftWidth = 40

// Group badge colors.
var groupColors = map[contact.Group]lipgloss.AdaptiveColor{
	contact.GroupFamily:  {Light: "5", Dark: "13"},
	contact.GroupFriends: {Light: "2", Dark: "10"},
	contact.GroupWork:    {Light: "4", Dark: "12"},
	contact.GroupOther:   {Light: "240", Dark: "245"},
}

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})
)

// GroupBadge returns the group name styled in its group color.
func GroupBadge(g contact.Group) string {
	c, ok := groupColors[g]
	if !ok {
		c = groupColors[contact.GroupOther]
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(g))
}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// PaneWidths calculates the left and right pane widths from a total width.
// Left pane gets 3/5 (minimum MinLeftWidth), right pane gets the rest.
func PaneWidths(totalWidth int) (left, right int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	left = totalWidth * 3 / 5
	if left < MinLeftWidth {
		left = MinLeftWidth
	}
	right = totalWidth - left
	if right < 0 {
		right = 0
	}
	return left, right
}

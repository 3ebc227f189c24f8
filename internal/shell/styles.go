package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the text styles used by the menu and the listing renderers.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles returns colour styles bound to w's terminal capabilities, or
// unstyled text when plain is set.
func NewStyles(w io.Writer, plain bool) Styles {
	if plain {
		return PlainStyles()
	}
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		Success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Warning: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}),
		Error:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Label:   r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Success: s, Warning: s, Error: s, Label: s, Muted: s}
}

package display

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles a Printer or report renders with. They are
// bound to a renderer so the colour profile follows the output, not the
// process's stdout.
type Styles struct {
	Header  lipgloss.Style
	State   lipgloss.Style
	Action  lipgloss.Style
	Warning lipgloss.Style
	Winner  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds the palette on the given renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		State: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

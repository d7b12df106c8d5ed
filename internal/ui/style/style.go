// Package style holds the colours, icons and lipgloss styles shared by the
// logger and the result renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Brand colours.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Styles is the set of lipgloss styles bound to one renderer.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Price   lipgloss.Style
	Saving  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles binds the shared styles to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(Iris),
		Header:  r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(Slate),
		Price:   r.NewStyle().Foreground(Green),
		Saving:  r.NewStyle().Bold(true).Foreground(Green),
		Warning: r.NewStyle().Foreground(Yellow),
		Error:   r.NewStyle().Foreground(Red),
	}
}

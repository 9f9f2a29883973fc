// Package style provides the colors, icons and text styles shared by the
// logger and the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Header styles section titles.
func Header(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Iris)
}

// Root styles a watched root.
func Root(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Green)
}

// Muted styles secondary information.
func Muted(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Slate)
}

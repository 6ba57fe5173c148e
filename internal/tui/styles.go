package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Track      lipgloss.Color
	Selected   lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray
	Text:       lipgloss.Color("#DFE6E9"), // Light gray
	Track:      lipgloss.Color("#4B5559"),
	Selected:   lipgloss.Color("#FFEAA7"), // Pale yellow
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// Header
	Header    lipgloss.Style
	HeaderDay lipgloss.Style

	// Dial
	Track     lipgloss.Style
	HourLabel lipgloss.Style
	Handle    lipgloss.Style
	Preview   lipgloss.Style
	Center    lipgloss.Style

	// Side panel
	PanelTitle       lipgloss.Style
	PaletteItem      lipgloss.Style
	TaskLine         lipgloss.Style
	TaskLineSelected lipgloss.Style
	TaskDone         lipgloss.Style

	// Footer
	Status     lipgloss.Style
	StatusWarn lipgloss.Style
	ErrorMsg   lipgloss.Style
	Help       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		HeaderDay: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Track: lipgloss.NewStyle().
			Foreground(Colors.Track),
		HourLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Handle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Selected),
		Preview: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
		Center: lipgloss.NewStyle().
			Foreground(Colors.Text),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),
		PaletteItem: lipgloss.NewStyle().
			Foreground(Colors.Text),
		TaskLine: lipgloss.NewStyle().
			Foreground(Colors.Text),
		TaskLineSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Selected),
		TaskDone: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(Colors.Muted),

		Status: lipgloss.NewStyle().
			Foreground(Colors.Text),
		StatusWarn: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),
		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),
	}
}

// CategoryStyle colors text with a category color, falling back to Secondary.
func (s Styles) CategoryStyle(color string) lipgloss.Style {
	c := Colors.Secondary
	if color != "" {
		c = lipgloss.Color(color)
	}
	return lipgloss.NewStyle().Foreground(c)
}

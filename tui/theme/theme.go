// Package theme centralizes the color palette and shared lipgloss styles for
// the shopcanvas TUIs.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors encapsulates the palette used by the TUIs.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
	SubtleBackground   lipgloss.TerminalColor
}

// DefaultColors is the Kanagawa-inspired default palette.
var DefaultColors = Colors{
	Green:              lipgloss.Color("#98BB6C"),
	Yellow:             lipgloss.Color("#FF9E3B"),
	Red:                lipgloss.Color("#FF5D62"),
	Orange:             lipgloss.Color("#FFA066"),
	Cyan:               lipgloss.Color("#7E9CD8"),
	Blue:               lipgloss.Color("#7FB4CA"),
	Violet:             lipgloss.Color("#957FB8"),
	LightText:          lipgloss.Color("#DCD7BA"),
	MutedText:          lipgloss.Color("#727169"),
	Border:             lipgloss.Color("#363646"),
	SelectedBackground: lipgloss.Color("#223249"),
	SubtleBackground:   lipgloss.Color("#1F1F28"),
}

// Theme bundles the reusable styles.
type Theme struct {
	Colors    Colors
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// DefaultTheme is the theme used by all shopcanvas TUIs.
var DefaultTheme = NewTheme(DefaultColors)

// NewTheme builds a theme from a palette.
func NewTheme(c Colors) *Theme {
	return &Theme{
		Colors:    c,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(c.Orange),
		Muted:     lipgloss.NewStyle().Foreground(c.MutedText),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(c.Cyan),
		Accent:    lipgloss.NewStyle().Foreground(c.Violet),
		Success:   lipgloss.NewStyle().Foreground(c.Green),
		Error:     lipgloss.NewStyle().Foreground(c.Red),
		Info:      lipgloss.NewStyle().Foreground(c.Blue),
	}
}

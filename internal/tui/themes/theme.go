// Package themes holds the color palettes for the dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
}

type palette struct {
	primary, secondary, fg, subtle, muted, border string
	success, warning, err, selectedFg             string
}

func (p palette) theme() Theme {
	return Theme{
		Primary:   lipgloss.Color(p.primary),
		Secondary: lipgloss.Color(p.secondary),
		Muted:     lipgloss.Color(p.muted),
		Border:    lipgloss.Color(p.border),
		Success:   lipgloss.Color(p.success),
		Warning:   lipgloss.Color(p.warning),
		Error:     lipgloss.Color(p.err),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			Underline(true).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.err)).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = palette{
	primary: "#7c3aed", secondary: "#a78bfa", fg: "#fafafa", subtle: "#a3a3a3",
	muted: "#737373", border: "#404040",
	success: "#10b981", warning: "#f59e0b", err: "#ef4444", selectedFg: "#fafafa",
}.theme()

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = palette{
	primary: "#cba6f7", secondary: "#f5c2e7", fg: "#cdd6f4", subtle: "#a6adc8",
	muted: "#6c7086", border: "#45475a",
	success: "#a6e3a1", warning: "#f9e2af", err: "#f38ba8", selectedFg: "#1e1e2e",
}.theme()

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ColorForRatio picks a bar color for spent/allocated.
func (t Theme) ColorForRatio(ratio float64) lipgloss.Color {
	switch {
	case ratio > 1:
		return t.Error
	case ratio >= 0.8:
		return t.Warning
	default:
		return t.Success
	}
}

// Package cli renders budgets, goals and notifications for plain terminal
// output and raises notifications outside the dashboard.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the default dashboard theme.
var (
	brandColor    = lipgloss.Color("#16a34a")
	positiveColor = lipgloss.Color("#10b981")
	cautionColor  = lipgloss.Color("#f59e0b")
	negativeColor = lipgloss.Color("#ef4444")
	infoColor     = lipgloss.Color("#06b6d4")
	mutedColor    = lipgloss.Color("#6b7280")
	borderColor   = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brandColor).
			MarginBottom(1)

	// SuccessStyle marks money left over and completed work.
	SuccessStyle = lipgloss.NewStyle().Foreground(positiveColor)

	// ErrorStyle marks overspending and failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(negativeColor)

	warningStyle = lipgloss.NewStyle().Foreground(cautionColor)

	// InfoStyle is for hints.
	InfoStyle = lipgloss.NewStyle().Foreground(infoColor)

	// SubtleStyle is for labels, ids and timestamps.
	SubtleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	BoldStyle = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// TableHeaderStyle underlines column headings.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	// AmountStyle right-aligns currency columns.
	AmountStyle = lipgloss.NewStyle().
			Align(lipgloss.Right).
			Width(12)
)

const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "💼"
)

func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle prefixes title with the wallet icon.
func FormatTitle(title string) string {
	return titleStyle.Render(WalletIcon + " " + title)
}

// RenderBox draws content in a rounded box under title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.UnsetMargins().Render(title),
		content,
	))
}

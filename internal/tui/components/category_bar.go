package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const nameWidth = 16

// CategoryBar renders one budget line: name, spent of allocated, and a bar
// colored by how much of the allocation is used.
func CategoryBar(cat model.BudgetCategory, width int, theme themes.Theme, selected bool) string {
	ratio := 0.0
	if cat.Allocated > 0 {
		ratio = cat.Spent / cat.Allocated
	} else if cat.Spent > 0 {
		ratio = 2
	}

	amounts := fmt.Sprintf("%s / %s", money.Format(cat.Spent), money.Format(cat.Allocated))
	barWidth := width - nameWidth - lipgloss.Width(amounts) - 4
	if barWidth < 10 {
		barWidth = 10
	}

	bar := progress.New(
		progress.WithSolidFill(string(theme.ColorForRatio(ratio))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	name := lipgloss.NewStyle().Width(nameWidth).Render(truncate(cat.Icon+" "+cat.Name, nameWidth))
	if selected {
		name = theme.Selected.Width(nameWidth).Render(truncate(cat.Icon+" "+cat.Name, nameWidth))
	}

	fill := ratio
	if fill > 1 {
		fill = 1
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(bar.ViewAs(fill))
	b.WriteString("  ")
	if ratio > 1 {
		b.WriteString(theme.StatusError.Render(amounts))
	} else {
		b.WriteString(theme.Normal.Render(amounts))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

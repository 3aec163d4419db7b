package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// renderWelcome returns the greeting, or a nudge to continue.
func renderWelcome(cw int, lastTitle string) string {
	greeting := theme.Title.Render("Benvenuto!")
	sub := "Scegli una scheda e comincia con la teoria."
	if lastTitle != "" {
		sub = "Bentornato! L'ultima volta eri su «" + lastTitle + "»."
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(greeting + "\n" + theme.Subtitle.Render(sub))
}

// renderStatsBar renders the overall progress in a bordered box matching
// content width.
func renderStatsBar(overall progress.Summary, inProgress, cw int) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	openStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	stats := fmt.Sprintf("%s   %s",
		doneStyle.Render(fmt.Sprintf("● %d/%d completate", overall.Completed, overall.Total)),
		openStyle.Render(fmt.Sprintf("◐ %d in corso", inProgress)),
	)
	bar := components.NewProgressBar("", float64(overall.Percentage)/100, true, cw-6).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + bar)
}

// statusDot renders the completion marker of a scheda.
func statusDot(st progress.Status) string {
	switch st {
	case progress.Completed:
		return theme.Correct.Render("●")
	case progress.InProgress:
		return theme.Highlight.Render("◐")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	}
}

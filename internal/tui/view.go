package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/hebdo/internal/ledger"
)

func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("hebdo · Semaine"))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		dayColStyle.Render(""),
		timeColStyle.Render(headerStyle.Render("Arrivée")),
		timeColStyle.Render(headerStyle.Render("Départ")),
		workColStyle.Render(headerStyle.Render("Travail")),
	))
	sb.WriteString("\n")

	for i, d := range ledger.Days {
		row := a.rows[d]
		label := string(d) + ":"
		if i == a.focusDay {
			label = highlightStyle.Render(label)
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			dayColStyle.Render(label),
			timeColStyle.Render(row[arrivalHours].View()+" : "+row[arrivalMinutes].View()),
			timeColStyle.Render(row[departureHours].View()+" : "+row[departureMinutes].View()),
			workColStyle.Render(a.summary.Days[d].String()),
		)
		if msg, ok := a.dayErrors[d]; ok {
			line += "  " + errorStyle.Render(msg)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(totalLine("Total", a.summary.Total.String(), successStyle))
	leftStyle := warningStyle
	if a.summary.TargetReached() {
		leftStyle = successStyle
	}
	sb.WriteString(totalLine("Temps restant", a.summary.Left.String(), leftStyle))

	if a.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("Error: ") + a.errMsg)
		if a.quitting {
			sb.WriteString("\n" + dimStyle.Render("Press Esc again to quit without saving"))
		}
		sb.WriteString("\n")
	} else if a.status != "" {
		sb.WriteString("\n" + successStyle.Render(a.status) + "\n")
	}

	sb.WriteString(helpStyle.Render("Enter: validate • Tab/arrows: move • Ctrl+S: save • Ctrl+R: reset • Esc: save & quit"))

	return boxStyle.Render(sb.String())
}

func totalLine(label, value string, style lipgloss.Style) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(31).Align(lipgloss.Right).Render(label),
		workColStyle.Render(style.Render(value)),
	) + "\n"
}

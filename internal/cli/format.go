package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	cellDone     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cellPartial  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cellEmpty    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellSelected = lipgloss.NewStyle().Underline(true)
)

// RolloverStyle colors a rollover message by outcome.
func RolloverStyle(action rollover.Action) lipgloss.Style {
	switch action {
	case rollover.ActionAdvanced, rollover.ActionFinished:
		return successStyle
	case rollover.ActionReset:
		return dangerStyle
	case rollover.ActionClockSkew:
		return warningStyle
	default:
		return mutedStyle
	}
}

// Header renders "Day X/75" for a user.
func Header(username string, state models.UserState) string {
	return headerStyle.Render(fmt.Sprintf("%s · Day %d/%d", username, state.ActualDay, constants.ProgramDays))
}

// ProgressBar renders completed days out of the program length.
func ProgressBar(completedDays, width int) string {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(width), progress.WithoutPercentage())
	pct := float64(completedDays) / float64(constants.ProgramDays)
	return fmt.Sprintf("%s %d/%d days", bar.ViewAs(pct), completedDays, constants.ProgramDays)
}

// Checklist renders the habits of one day with the user's labels.
func Checklist(labels models.HabitLabels, p models.DayProgress) string {
	var b strings.Builder
	for i, k := range models.HabitKeys {
		mark := cellEmpty.Render("[ ]")
		if p.Done(k) {
			mark = successStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "  %s %d. %s %s\n", mark, i+1, labels.Label(k), mutedStyle.Render("("+string(k)+")"))
	}
	if p.Reflection != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", mutedStyle.Render("Reflection:"), p.Reflection)
	}
	return b.String()
}

// ProgressGrid renders all program days, 15 per row. Complete days are green,
// partially done days orange. actual is bracketed and selected underlined.
func ProgressGrid(all []models.DayProgress, actual, selected int) string {
	const perRow = 15
	var b strings.Builder
	for i, p := range all {
		style := cellEmpty
		switch n := p.CompletedCount(); {
		case n == len(models.HabitKeys):
			style = cellDone
		case n > 0:
			style = cellPartial
		}
		if p.DayNumber == selected {
			style = style.Inherit(cellSelected)
		}

		cell := fmt.Sprintf(" %2d ", p.DayNumber)
		if p.DayNumber == actual {
			cell = fmt.Sprintf("[%2d]", p.DayNumber)
		}
		b.WriteString(style.Render(cell))

		if (i+1)%perRow == 0 {
			b.WriteString("\n")
		}
	}
	if len(all)%perRow != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

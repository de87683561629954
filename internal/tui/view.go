package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateEditReflection, constants.StateEditLabels, constants.StateConfirmReset:
		content = m.form.View()
	default:
		content = m.viewTracker()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		"",
		content,
		m.viewFooter(),
	))
}

func (m Model) viewHeader() string {
	state := m.status.State
	title := headerStyle.Render(fmt.Sprintf("HARD 75 · %s · Day %d/%d", m.username, state.ActualDay, constants.ProgramDays))
	pct := float64(m.status.CompletedDays) / float64(constants.ProgramDays)
	bar := fmt.Sprintf("%s %d/%d days", m.bar.ViewAs(pct), m.status.CompletedDays, constants.ProgramDays)
	return lipgloss.JoinVertical(lipgloss.Left, title, bar)
}

func (m Model) viewTracker() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(noticeStyle(m.noticeAction).Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewDaySelector())
	b.WriteString("\n\n")

	selected := m.status.Selected
	labels := m.status.State.Labels()
	for i, k := range models.HabitKeys {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := mutedStyle.Render("[ ]")
		label := labels.Label(k)
		if selected.Done(k) {
			box = doneStyle.Render("[x]")
			label = doneStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, box, label)
	}

	fmt.Fprintf(&b, "\n%s %d/%d\n", mutedStyle.Render("Completed:"), selected.CompletedCount(), len(models.HabitKeys))
	if selected.Reflection != "" {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render("Reflection:"), selected.Reflection)
	}

	b.WriteString("\n")
	b.WriteString(m.status.Message)
	return b.String()
}

func (m Model) viewDaySelector() string {
	state := m.status.State
	day := fmt.Sprintf("◀ Day %d ▶", state.SelectedDay)

	var hint string
	switch {
	case state.SelectedDay == state.ActualDay:
		hint = "today"
	case state.SelectedDay < state.ActualDay:
		hint = "past day"
	default:
		hint = "upcoming"
	}
	return daySelectorStyle.Render(day) + " " + mutedStyle.Render(hint)
}

func (m Model) viewFooter() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	}
	if m.state == constants.StateTracker {
		parts = append(parts, m.help.View(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n" + strings.Join(parts, "\n")
}

func noticeStyle(action rollover.Action) lipgloss.Style {
	switch action {
	case rollover.ActionReset:
		return dangerStyle
	case rollover.ActionClockSkew:
		return warningStyle
	default:
		return successStyle
	}
}

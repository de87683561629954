package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := min(msg.Width-20, 60); w > 10 {
			m.bar.Width = w
		}
		return m, nil

	case tickMsg:
		if m.state == constants.StateTracker {
			m.refresh()
		}
		return m, tick()
	}

	if m.state != constants.StateTracker {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(models.HabitKeys)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.selectDay(m.selectedDay() - 1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.selectDay(m.selectedDay() + 1)
	case key.Matches(keyMsg, m.keys.Today):
		m.selectDay(m.status.State.ActualDay)
	case key.Matches(keyMsg, m.keys.Toggle):
		if _, err := m.svc.ToggleHabit(m.username, m.selectedDay(), m.selectedHabit()); err != nil {
			m.err = err
			return m, nil
		}
		m.refresh()
	case key.Matches(keyMsg, m.keys.Reflect):
		m.reflectionForm = &ReflectionFormModel{Day: m.selectedDay(), Text: m.status.Selected.Reflection}
		m.form = NewReflectionForm(m.reflectionForm)
		m.state = constants.StateEditReflection
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Labels):
		labels := m.status.State.Labels()
		m.labelsForm = &LabelsFormModel{Labels: make([]string, len(models.HabitKeys))}
		for i, k := range models.HabitKeys {
			m.labelsForm.Labels[i] = labels.Label(k)
		}
		m.form = NewLabelsForm(m.labelsForm)
		m.state = constants.StateEditLabels
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Reset):
		m.confirmForm = &ConfirmFormModel{}
		m.form = NewConfirmResetForm(m.confirmForm, m.username)
		m.state = constants.StateConfirmReset
		return m, m.form.Init()
	}

	return m, nil
}

// selectDay moves the viewport within the program. Out-of-range days are ignored.
func (m *Model) selectDay(day int) {
	if day < 1 || day > constants.ProgramDays || day == m.selectedDay() {
		return
	}
	if _, err := m.svc.SelectDay(m.username, day); err != nil {
		m.err = err
		return
	}
	m.refresh()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm applies the values of the open form.
func (m *Model) submitForm() {
	var err error
	switch m.state {
	case constants.StateEditReflection:
		text := m.reflectionForm.Text
		_, err = m.svc.UpdateProgress(m.username, m.reflectionForm.Day, models.DayProgressPatch{Reflection: &text})
	case constants.StateEditLabels:
		labels := make(models.HabitLabels, len(models.HabitKeys))
		for i, k := range models.HabitKeys {
			labels[k] = m.labelsForm.Labels[i]
		}
		_, err = m.svc.SetLabels(m.username, labels)
	case constants.StateConfirmReset:
		if m.confirmForm.Confirmed {
			err = m.svc.ResetUser(m.username)
			if err == nil {
				m.cursor = 0
				m.notice = ""
			}
		}
	}
	m.err = err
}

func (m *Model) closeForm() {
	m.form = nil
	m.reflectionForm = nil
	m.labelsForm = nil
	m.confirmForm = nil
	m.state = constants.StateTracker
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
	"github.com/julianstephens/hard75/internal/tracker"
)

// rolloverInterval is how often the tracker re-runs the rollover check while open.
const rolloverInterval = time.Minute

type Model struct {
	svc            *tracker.Service
	username       string
	state          constants.SessionState
	keys           KeyMap
	help           help.Model
	bar            progress.Model
	form           *huh.Form
	reflectionForm *ReflectionFormModel
	labelsForm     *LabelsFormModel
	confirmForm    *ConfirmFormModel
	status         tracker.Status
	cursor         int    // index into models.HabitKeys
	notice         string // last rollover message worth showing
	noticeAction   rollover.Action
	err            error
	quitting       bool
	width          int
	height         int
}

func NewModel(svc *tracker.Service, username string) Model {
	m := Model{
		svc:      svc,
		username: username,
		state:    constants.StateTracker,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.PrevDay, m.keys.NextDay, m.keys.Reflect, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	actions := []key.Binding{m.keys.Toggle, m.keys.Reflect, m.keys.Labels, m.keys.Reset}
	global := []key.Binding{m.keys.Quit, m.keys.Help}
	return [][]key.Binding{navigation, actions, global}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// refresh runs the rollover check and reloads the dashboard.
func (m *Model) refresh() {
	status, res, err := m.svc.Status(m.username)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = status

	switch res.Action {
	case rollover.ActionAdvanced, rollover.ActionReset, rollover.ActionFinished, rollover.ActionClockSkew:
		m.notice = res.Message()
		m.noticeAction = res.Action
	}
}

func (m Model) selectedDay() int {
	return m.status.State.SelectedDay
}

func (m Model) selectedHabit() models.HabitKey {
	return models.HabitKeys[m.cursor]
}

// Package tui is the interactive harness around the progression engine.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progress"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/tui/components/days"
	"github.com/julianstephens/dayone/internal/tui/components/modules"
)

type SessionState int

const (
	StateRoleForm SessionState = iota
	StateDays
	StateConfirmGraduate
	StateConfirmReset
	StateGraduated
)

type RoleFormModel struct {
	Name       string
	Email      string
	Role       string
	Department string
}

type Model struct {
	eng      *progression.Engine
	send     func(tea.Msg)
	state    SessionState
	keys     KeyMap
	help     help.Model
	form     *huh.Form
	roleForm *RoleFormModel
	days     days.Model
	modules  modules.Model
	banner   string
	hint     string
	quitting bool
	width    int
	height   int
}

// NewModel builds the harness for eng. send delivers messages to the running
// program from timer goroutines; it may be nil in tests that do not need
// banners to expire.
func NewModel(eng *progression.Engine, send func(tea.Msg)) Model {
	m := Model{
		eng:     eng,
		send:    send,
		state:   StateDays,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		days:    days.New(eng.Curriculum()),
		modules: modules.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDays:
		mk := m.modules.Keys()
		return []key.Binding{mk.Complete, mk.Step, m.keys.PrevDay, m.keys.NextDay, m.keys.Graduate, m.keys.Help, m.keys.Quit}
	case StateGraduated:
		return []key.Binding{m.keys.Reset, m.keys.Quit}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state != StateDays {
		return [][]key.Binding{m.ShortHelp()}
	}
	mk := m.modules.Keys()
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay},
		{mk.Complete, mk.Step, m.keys.Graduate},
		{m.keys.Reset, m.keys.UnlockAll, m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	if m.state == StateRoleForm && m.form != nil {
		return m.form.Init()
	}
	return nil
}

// refresh pulls the engine state into the view. It returns the init command
// of the role form when the engine is back in role selection.
func (m *Model) refresh() tea.Cmd {
	switch m.eng.State() {
	case models.AppStateRoleSelection:
		if m.state != StateRoleForm {
			return m.startRoleForm()
		}
		return nil
	case models.AppStateRoleBased:
		if m.state != StateConfirmReset {
			m.state = StateGraduated
		}
	default:
		if m.state == StateRoleForm || m.state == StateGraduated {
			m.state = StateDays
		}
	}

	n := m.eng.DayCount()
	day := m.eng.CurrentDay()
	if d, ok := m.eng.Curriculum().Day(day); ok {
		m.modules.SetDay(d, m.eng.Modules(day))
	}
	overall := progress.ProgramProgressPercent(m.eng.Snapshot().User, n)
	m.days.SetRows(progress.Summary(m.eng, n), day, overall)
	return nil
}

func (m *Model) startRoleForm() tea.Cmd {
	m.state = StateRoleForm
	m.roleForm = &RoleFormModel{}
	m.form = NewRoleForm(m.roleForm)
	return m.form.Init()
}

// NewRoleForm creates the role selection form
func NewRoleForm(fm *RoleFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Email").
				Value(&fm.Email),
			huh.NewInput().
				Title("Role").
				Value(&fm.Role).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errRoleRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Department").
				Value(&fm.Department),
		),
	).WithTheme(huh.ThemeDracula())
}

// run executes fn off the event loop and reports its result.
func (m Model) run(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(context.Background())}
	}
}

// showBanner displays text until the banner task fires. The task is owned by
// the engine so reset, unlock-all and teardown cancel it.
func (m *Model) showBanner(text string) {
	m.banner = text
	if m.send == nil {
		return
	}
	send := m.send
	m.eng.Schedule(constants.TaskBanner, constants.BannerDuration, func() {
		send(clearBannerMsg{})
	})
}

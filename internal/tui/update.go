package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/tui/components/modules"
)

var errRoleRequired = errors.New("role is required")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.modules.SetSize(msg.Width/2, msg.Height-8)
		if m.state != StateRoleForm {
			return m, nil
		}

	case actionDoneMsg:
		cmd := m.refresh()
		m.hint = ""
		if msg.err != nil {
			m.hint = describe(msg.err)
		}
		return m, cmd

	case moduleCompletedMsg:
		return m, m.refresh()

	case dayCompletedMsg:
		cmd := m.refresh()
		title := ""
		if d, ok := m.eng.Curriculum().Day(msg.day); ok {
			title = d.Title
		}
		m.showBanner(fmt.Sprintf("🎉 Day %d complete: %s", msg.day, title))
		return m, cmd

	case dayAdvancedMsg:
		m.hint = ""
		return m, m.refresh()

	case graduatedMsg:
		cmd := m.refresh()
		m.showBanner("🎓 Onboarding complete. Welcome aboard!")
		return m, cmd

	case unlockedMsg:
		cmd := m.refresh()
		m.showBanner("All days unlocked")
		return m, cmd

	case resetMsg:
		m.banner = ""
		m.hint = ""
		return m, m.refresh()

	case clearBannerMsg:
		m.banner = ""
		return m, nil

	case modules.CompleteModuleMsg:
		return m, m.run(func(ctx context.Context) error {
			_, err := m.eng.CompleteModule(ctx, msg.Day, msg.ID)
			return err
		})

	case modules.StepModuleMsg:
		return m, m.run(func(ctx context.Context) error {
			return m.eng.SetModuleProgress(ctx, msg.Day, msg.ID, msg.Percent)
		})
	}

	if m.state == StateRoleForm {
		return m.updateRoleForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.state == StateDays {
		m.modules, cmd = m.modules.Update(msg)
	}
	return m, cmd
}

func (m Model) updateRoleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		sel := models.RoleSelection{
			Name:       m.roleForm.Name,
			Email:      m.roleForm.Email,
			Role:       m.roleForm.Role,
			Department: m.roleForm.Department,
			StartDate:  time.Now().Format(constants.DateFormat),
		}
		m.state = StateDays
		return m, m.run(func(ctx context.Context) error {
			return m.eng.SelectRole(ctx, sel)
		})
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}

	switch m.state {
	case StateConfirmGraduate:
		switch msg.String() {
		case "y", "Y":
			m.state = StateDays
			return true, m.run(m.eng.Graduate)
		case "n", "N", "esc":
			m.state = StateDays
		}
		return true, nil

	case StateConfirmReset:
		switch msg.String() {
		case "y", "Y":
			m.state = StateDays
			return true, m.run(m.eng.Reset)
		case "n", "N", "esc":
			m.state = StateDays
			return true, m.refresh()
		}
		return true, nil

	case StateGraduated:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return true, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.state = StateConfirmReset
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.PrevDay):
		return true, m.navigate(m.eng.CurrentDay() - 1)
	case key.Matches(msg, m.keys.NextDay):
		return true, m.navigate(m.eng.CurrentDay() + 1)
	case key.Matches(msg, m.keys.Graduate):
		if !m.eng.ReadyToGraduate() {
			m.hint = fmt.Sprintf("Complete day %d to graduate.", m.eng.DayCount())
			return true, nil
		}
		m.state = StateConfirmGraduate
		return true, nil
	case key.Matches(msg, m.keys.Reset):
		m.state = StateConfirmReset
		return true, nil
	case key.Matches(msg, m.keys.UnlockAll):
		return true, m.run(m.eng.UnlockAll)
	}
	return false, nil
}

func (m *Model) navigate(day int) tea.Cmd {
	if day < constants.MinDay || day > m.eng.DayCount() {
		return nil
	}
	return m.run(func(ctx context.Context) error {
		return m.eng.NavigateTo(ctx, day)
	})
}

// describe turns an engine error into a one-line hint.
func describe(err error) string {
	var denied *progression.NavigationDeniedError
	switch {
	case errors.As(err, &denied):
		return fmt.Sprintf("🔒 Day %d is locked. Finish day %d first.", denied.Day, denied.MaxUnlockedDay)
	case errors.Is(err, progression.ErrOverrideDisabled):
		return "Unlock all is only available with --dev."
	case errors.Is(err, progression.ErrNotReadyToGraduate):
		return "Complete every day before graduating."
	default:
		return err.Error()
	}
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateRoleForm:
		content = docStyle.Render(titleStyle.Render("Welcome! Tell us about the role you are joining.") + "\n\n" + m.form.View())
	case StateDays:
		content = m.viewDays()
	case StateConfirmGraduate:
		content = m.viewConfirmGraduate()
	case StateConfirmReset:
		content = m.viewConfirmReset()
	case StateGraduated:
		content = m.viewGraduated()
	}

	var status string
	switch {
	case m.banner != "":
		status = bannerStyle.Render(m.banner)
	case m.hint != "":
		status = warningStyle.Render(m.hint)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	user := m.eng.Snapshot().User
	tabs := []string{activeTabStyle.Render("dayone")}
	if user.Name != "" {
		tabs = append(tabs, inactiveTabStyle.Render(user.Name))
	}
	if user.Role != "" {
		tabs = append(tabs, inactiveTabStyle.Render(user.Role))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDays() string {
	day := m.eng.CurrentDay()
	title := ""
	if d, ok := m.eng.Curriculum().Day(day); ok {
		title = d.Title
	}
	right := titleStyle.Render(fmt.Sprintf("Day %d: %s", day, title)) + "\n" + m.modules.View()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		docStyle.Render(m.days.View()),
		docStyle.Render(right),
	)
}

func (m Model) viewConfirmGraduate() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Finish onboarding and graduate?"),
			"Onboarding days stay visible in your history.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Discard all onboarding progress?"),
			"This cannot be undone.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewGraduated() string {
	user := m.eng.Snapshot().User
	who := user.Name
	if who == "" {
		who = "You"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(fmt.Sprintf("%s finished onboarding 🎓", who)),
			fmt.Sprintf("Welcome to the %s experience.", user.Role),
			"",
			m.days.View(),
		),
	)
}

package days

import (
	"fmt"
	"strings"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progress"
)

var (
	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	rowStyle = lipgloss.NewStyle()
)

// Model renders the day sidebar. It holds no state of its own beyond the last
// rows it was given.
type Model struct {
	cur     *curriculum.Curriculum
	rows    []progress.DayRow
	current int
	bar     progressbar.Model
	program progressbar.Model
	overall int
}

func New(cur *curriculum.Curriculum) Model {
	return Model{
		cur:     cur,
		bar:     progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(12), progressbar.WithoutPercentage()),
		program: progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(30)),
	}
}

// SetRows replaces the displayed rows. current is highlighted; overall is the
// program percentage.
func (m *Model) SetRows(rows []progress.DayRow, current, overall int) {
	m.rows = rows
	m.current = current
	m.overall = overall
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("Program  " + m.program.ViewAs(float64(m.overall)/100) + "\n\n")

	for _, row := range m.rows {
		title := ""
		if d, ok := m.cur.Day(row.Day); ok {
			title = d.Title
		}
		line := fmt.Sprintf("%s Day %d  %-24s %s %2d/%-2d", cli.StatusIcon(row.Status), row.Day, truncate(title, 24),
			m.bar.ViewAs(float64(row.Percent)/100), row.Completed, row.Total)

		style := rowStyle
		switch {
		case row.Day == m.current:
			style = currentStyle
			line = "› " + line
		case row.Status == models.StatusLocked:
			style = lockedStyle
			line = "  " + line
		default:
			line = "  " + line
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

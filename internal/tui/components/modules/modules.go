package modules

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/models"
)

type CompleteModuleMsg struct {
	Day int
	ID  string
}

type StepModuleMsg struct {
	Day     int
	ID      string
	Percent int
}

type Item struct {
	Module curriculum.Module
	Record models.ModuleRecord
}

func (i Item) Title() string {
	return cli.StatusIcon(i.Record.Status) + " " + i.Module.Title
}

func (i Item) Description() string {
	switch i.Record.Status {
	case models.StatusCompleted:
		return "completed"
	case models.StatusLocked:
		return "locked"
	}
	if i.Module.Steps > 1 {
		return fmt.Sprintf("%d of %d steps", i.stepsDone(), i.Module.Steps)
	}
	return "not started"
}

func (i Item) FilterValue() string { return i.Module.Title }

func (i Item) stepsDone() int {
	if i.Module.Steps <= 1 {
		return 0
	}
	return int(math.Round(float64(i.Record.Progress) * float64(i.Module.Steps) / 100))
}

// nextStepPercent is the progress after one more step of a multi-step module.
func (i Item) nextStepPercent() int {
	if i.Module.Steps <= 1 {
		return 100
	}
	pct := (i.stepsDone() + 1) * 100 / i.Module.Steps
	if pct > 100 {
		pct = 100
	}
	return pct
}

type KeyMap struct {
	Complete key.Binding
	Step     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "complete"),
		),
		Step: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next step"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	day  int
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list: l,
		keys: DefaultKeyMap(),
	}
}

// SetDay shows the modules of day. records must be in configured order.
func (m *Model) SetDay(d curriculum.Day, records []models.ModuleRecord) {
	if d.Number != m.day {
		m.list.Select(0)
	}
	m.day = d.Number

	byID := make(map[string]models.ModuleRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	items := make([]list.Item, len(d.Modules))
	for i, mod := range d.Modules {
		items[i] = Item{Module: mod, Record: byID[mod.ID]}
	}
	m.list.SetItems(items)
}

func (m Model) Day() int { return m.day }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok && i.actionable() {
				day := m.day
				return m, func() tea.Msg { return CompleteModuleMsg{Day: day, ID: i.Module.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Step):
			if i, ok := m.list.SelectedItem().(Item); ok && i.actionable() {
				day, pct := m.day, i.nextStepPercent()
				return m, func() tea.Msg { return StepModuleMsg{Day: day, ID: i.Module.ID, Percent: pct} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (i Item) actionable() bool {
	return i.Record.Status != models.StatusCompleted && i.Record.Status != models.StatusLocked
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No modules configured for this day."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

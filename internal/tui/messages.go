package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayone/internal/progression"
)

type moduleCompletedMsg struct {
	day int
	id  string
}

type dayCompletedMsg struct{ day int }

type dayAdvancedMsg struct{ day int }

type graduatedMsg struct{}

type unlockedMsg struct{}

type resetMsg struct{}

// actionDoneMsg carries the result of an engine call made from a tea.Cmd
type actionDoneMsg struct{ err error }

type clearBannerMsg struct{}

// EngineHooks forwards engine events to the running program. Engine calls
// are made from tea.Cmds, so send never runs on the event loop goroutine.
func EngineHooks(send func(tea.Msg)) progression.Hooks {
	return progression.Hooks{
		OnModuleComplete: func(day int, id string) { send(moduleCompletedMsg{day: day, id: id}) },
		OnDayComplete:    func(day int) { send(dayCompletedMsg{day: day}) },
		OnDayAdvanced:    func(day int) { send(dayAdvancedMsg{day: day}) },
		OnGraduate:       func() { send(graduatedMsg{}) },
		OnUnlockAll:      func() { send(unlockedMsg{}) },
		OnReset:          func() { send(resetMsg{}) },
	}
}

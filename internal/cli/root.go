package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/logger"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/notifier"
	"github.com/julianstephens/dayone/internal/progress"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/storage"
)

// Notifier delivers a celebratory toast
type Notifier interface {
	Notify(text string) error
}

// Settings are the resolved global flags
type Settings struct {
	Delay    time.Duration
	Dev      bool
	Location *time.Location // nil means time.Local
}

type Context struct {
	Backend    storage.Backend
	Store      *storage.Adapter
	Curriculum *curriculum.Curriculum
	Notifier   Notifier
	Settings   Settings
}

// NewContext wires the adapter for backend and cur.
func NewContext(backend storage.Backend, cur *curriculum.Curriculum, settings Settings) *Context {
	return &Context{
		Backend:    backend,
		Store:      storage.NewAdapter(backend, storage.WithDayCount(cur.DayCount())),
		Curriculum: cur,
		Notifier:   notifier.New(),
		Settings:   settings,
	}
}

// Location returns the zone dates are shown and recorded in.
func (c *Context) Location() *time.Location {
	if c.Settings.Location == nil {
		return time.Local
	}
	return c.Settings.Location
}

// OpenEngine loads the engine from the store. CLI commands pass a zero
// delay so a day advance lands before the process exits.
func (c *Context) OpenEngine(delay time.Duration, hooks progression.Hooks) (*progression.Engine, error) {
	return progression.Open(context.Background(), c.Curriculum, c.Store, progression.Options{
		TransitionDelay: delay,
		AllowOverrides:  c.Settings.Dev,
		Hooks:           hooks,
	})
}

// Open returns an engine for a one-shot command: zero delay, with toasts.
func (c *Context) Open() (*progression.Engine, error) {
	var eng *progression.Engine
	hooks := c.NotifyHooks(func() models.UserProfile { return eng.Snapshot().User })
	eng, err := c.OpenEngine(0, hooks)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// NotifyHooks sends day-complete and graduation toasts. Delivery failures
// are logged and otherwise ignored.
func (c *Context) NotifyHooks(profile func() models.UserProfile) progression.Hooks {
	if c.Notifier == nil {
		return progression.Hooks{}
	}
	send := func(msg string) {
		if err := c.Notifier.Notify(msg); err != nil {
			logger.Debug("Notification not delivered", "error", err)
		}
	}
	return progression.Hooks{
		OnDayComplete: func(day int) {
			title := ""
			if d, ok := c.Curriculum.Day(day); ok {
				title = d.Title
			}
			send(notifier.DayCompleteMessage(day, c.Curriculum.DayCount(), title))
		},
		OnGraduate: func() {
			p := profile()
			send(notifier.GraduationMessage(p.Name, p.Role))
		},
	}
}

// MergeHooks returns hooks that call a's callback, then b's.
func MergeHooks(a, b progression.Hooks) progression.Hooks {
	return progression.Hooks{
		OnModuleComplete: func(day int, id string) {
			if a.OnModuleComplete != nil {
				a.OnModuleComplete(day, id)
			}
			if b.OnModuleComplete != nil {
				b.OnModuleComplete(day, id)
			}
		},
		OnDayComplete: chainDay(a.OnDayComplete, b.OnDayComplete),
		OnDayAdvanced: chainDay(a.OnDayAdvanced, b.OnDayAdvanced),
		OnGraduate:    chain(a.OnGraduate, b.OnGraduate),
		OnUnlockAll:   chain(a.OnUnlockAll, b.OnUnlockAll),
		OnReset:       chain(a.OnReset, b.OnReset),
	}
}

func chain(fns ...func()) func() {
	return func() {
		for _, fn := range fns {
			if fn != nil {
				fn()
			}
		}
	}
}

func chainDay(fns ...func(int)) func(int) {
	return func(day int) {
		for _, fn := range fns {
			if fn != nil {
				fn(day)
			}
		}
	}
}

// StatusIcon renders a status as a single glyph
func StatusIcon(st models.Status) string {
	switch st {
	case models.StatusCompleted:
		return "✓"
	case models.StatusInProgress:
		return "◐"
	case models.StatusAvailable:
		return "○"
	default:
		return "🔒"
	}
}

// ProgressBar renders pct as a fixed-width text bar.
func ProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// PrintDay prints the modules of day with their status.
func PrintDay(eng *progression.Engine, day int) {
	d, ok := eng.Curriculum().Day(day)
	if !ok {
		return
	}
	modules := eng.Modules(day)
	st := progress.FeedStatus(day, eng, modules)
	pct := progress.DayProgressPercent(modules)
	fmt.Printf("Day %d: %s  %s %s %d%%\n", day, d.Title, StatusIcon(st), ProgressBar(pct, 20), pct)

	titles := make(map[string]string, len(d.Modules))
	for _, m := range d.Modules {
		titles[m.ID] = m.Title
	}
	for _, m := range modules {
		line := fmt.Sprintf("  %s %-24s %s", StatusIcon(m.Status), m.ID, titles[m.ID])
		if m.Status == models.StatusInProgress {
			line += fmt.Sprintf(" (%d%%)", m.Progress)
		}
		fmt.Println(line)
	}
}

// Package progression implements the onboarding progression engine: the
// program state machine, the day controller and the per-day module trackers,
// held in one container that serializes every event and persists the result.
package progression

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/curriculum"
	"github.com/julianstephens/dayone/internal/logger"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/storage"
	"github.com/julianstephens/dayone/internal/tracker"
)

// Store is the persistence the engine writes its snapshot through
type Store interface {
	Load(ctx context.Context) (*models.PersistedSnapshot, error)
	Save(ctx context.Context, snapshot models.PersistedSnapshot) error
	Clear(ctx context.Context) error
}

// Hooks are invoked after each settled change, in event order, without the
// engine lock held. Any of them may be nil.
type Hooks struct {
	OnModuleComplete func(day int, moduleID string)
	OnDayComplete    func(day int)
	OnDayAdvanced    func(day int)
	OnGraduate       func()
	OnUnlockAll      func()
	OnReset          func()
}

// Options configure an Engine
type Options struct {
	TransitionDelay time.Duration
	AllowOverrides  bool
	Scheduler       Scheduler
	Hooks           Hooks
	Now             func() time.Time
	NewID           func() string
}

type pendingTask struct {
	id   uint64
	task Task
}

// Engine is the single owner of the onboarding state
type Engine struct {
	mu         sync.Mutex
	curriculum *curriculum.Curriculum
	store      Store
	opts       Options

	snapshot models.PersistedSnapshot
	program  *Program
	days     *DayController
	trackers map[int]*tracker.Tracker

	pending map[string]pendingTask
	seq     uint64
	events  []func()
	closed  bool
}

// Open loads the persisted snapshot and builds the engine around it. A missing
// or corrupt snapshot starts a fresh journey; only backend read failures are
// returned.
func Open(ctx context.Context, cur *curriculum.Curriculum, store Store, opts Options) (*Engine, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	e := &Engine{
		curriculum: cur,
		store:      store,
		opts:       opts,
		pending:    make(map[string]pendingTask),
	}

	snapshot := models.DefaultSnapshot()
	loaded, err := store.Load(ctx)
	var corrupt *storage.CorruptStateError
	switch {
	case errors.As(err, &corrupt):
		logger.Warn("Stored snapshot is corrupt, starting from defaults", "error", err)
	case err != nil:
		return nil, err
	case loaded != nil:
		snapshot = *loaded
	}

	e.mu.Lock()
	e.snapshot = snapshot
	e.rebuildLocked()
	e.events = nil
	e.mu.Unlock()

	logger.Debug("Engine opened",
		"appState", snapshot.AppState,
		"onboardingDay", snapshot.User.OnboardingDay,
		"days", cur.DayCount(),
	)
	return e, nil
}

// rebuildLocked recreates the program machine, day controller and trackers
// from e.snapshot.
func (e *Engine) rebuildLocked() {
	e.program = NewProgram(e.snapshot.AppState)
	e.snapshot.AppState = e.program.State()
	e.days = NewDayController(e.curriculum.DayCount(), &e.snapshot.User)
	e.trackers = make(map[int]*tracker.Tracker, e.curriculum.DayCount())

	for _, d := range e.curriculum.Days {
		t := tracker.New(d.Number, d.ModuleIDs(), d.Required())
		if rec, ok := e.snapshot.User.DayProgress[d.Number]; ok {
			if unknown := t.Restore(rec.ModuleIDs(), rec.Completed); len(unknown) > 0 {
				logger.Warn("Ignoring completed modules that are no longer configured", "day", d.Number, "modules", unknown)
			}
			if unknown := t.RestoreProgress(rec.ModuleProgress); len(unknown) > 0 {
				logger.Warn("Ignoring progress on modules that are no longer configured", "day", d.Number, "modules", unknown)
			}
			if t.IsSatisfied() && !rec.Completed {
				// the curriculum threshold was lowered since the last save
				if _, next, advance := e.days.OnDaySatisfied(d.Number, e.opts.Now()); advance {
					e.days.ApplyAdvance(next)
				}
			}
		}
		t.OnSatisfied(e.daySatisfiedLocked)
		e.trackers[d.Number] = t
	}
}

// apply runs fn under the engine lock, persists on success when persist is
// set, then dispatches the events fn queued.
func (e *Engine) apply(ctx context.Context, persist bool, fn func() error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	err := fn()
	if err == nil && persist {
		e.persistLocked(ctx)
	}
	events := e.events
	e.events = nil
	e.mu.Unlock()

	dispatch(events)
	return err
}

func dispatch(events []func()) {
	for _, fn := range events {
		fn()
	}
}

func (e *Engine) emit(fn func()) {
	e.events = append(e.events, fn)
}

func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.store.Save(ctx, e.snapshot.Clone()); err != nil {
		logger.Warn("Progress could not be saved, continuing in memory", "error", err)
	}
}

// SelectRole merges the selected role into the profile and starts onboarding.
func (e *Engine) SelectRole(ctx context.Context, sel models.RoleSelection) error {
	return e.apply(ctx, true, func() error {
		if err := e.program.SelectRole(&e.snapshot.User, sel); err != nil {
			return err
		}
		e.snapshot.AppState = e.program.State()
		logger.Info("Role selected", "role", e.snapshot.User.Role)
		return nil
	})
}

func (e *Engine) trackerLocked(day int, moduleID string) (*tracker.Tracker, error) {
	if e.program.State() != models.AppStateOnboarding {
		return nil, &InvalidTransitionError{From: e.program.State(), Action: "complete modules"}
	}
	t, ok := e.trackers[day]
	if !ok || !t.Has(moduleID) {
		return nil, &tracker.UnknownModuleError{Day: day, ModuleID: moduleID}
	}
	if e.days.Status(day) == models.StatusLocked {
		return nil, &NavigationDeniedError{Day: day, MaxUnlockedDay: e.days.MaxUnlockedDay()}
	}
	return t, nil
}

// CompleteModule marks moduleID of day complete and returns the day's
// completed count. Completing an already complete module changes nothing.
func (e *Engine) CompleteModule(ctx context.Context, day int, moduleID string) (int, error) {
	var count int
	err := e.apply(ctx, true, func() error {
		t, err := e.trackerLocked(day, moduleID)
		if err != nil {
			return err
		}
		if t.IsComplete(moduleID) {
			count = t.Completed()
			return nil
		}
		e.recordModuleLocked(day, moduleID)
		count, err = t.MarkComplete(moduleID)
		return err
	})
	return count, err
}

// SetModuleProgress records partial progress on a multi-step module; 100
// completes it.
func (e *Engine) SetModuleProgress(ctx context.Context, day int, moduleID string, pct int) error {
	return e.apply(ctx, true, func() error {
		t, err := e.trackerLocked(day, moduleID)
		if err != nil {
			return err
		}
		if t.IsComplete(moduleID) {
			return nil
		}
		if pct >= 100 {
			e.recordModuleLocked(day, moduleID)
		}
		if _, err = t.SetProgress(moduleID, pct); err != nil {
			return err
		}
		e.days.SetModuleProgress(day, moduleID, t.Progress(moduleID))
		return nil
	})
}

func (e *Engine) recordModuleLocked(day int, moduleID string) {
	e.days.SetModuleProgress(day, moduleID, 0)
	e.days.RecordTask(day, models.TaskMarker{
		ID:          e.opts.NewID(),
		ModuleID:    moduleID,
		CompletedAt: e.opts.Now().UTC().Format(constants.TimestampFormat),
		Source:      models.TaskSourceModule,
	})
	if h := e.opts.Hooks.OnModuleComplete; h != nil {
		e.emit(func() { h(day, moduleID) })
	}
}

// daySatisfiedLocked is the tracker's edge-triggered satisfaction signal.
func (e *Engine) daySatisfiedLocked(day int) {
	completed, next, advance := e.days.OnDaySatisfied(day, e.opts.Now())
	if completed {
		logger.Info("Day complete", "day", day)
		if h := e.opts.Hooks.OnDayComplete; h != nil {
			e.emit(func() { h(day) })
		}
	}
	if advance {
		e.scheduleAdvanceLocked(next)
	}
}

func (e *Engine) scheduleAdvanceLocked(next int) {
	advance := func() {
		if e.days.ApplyAdvance(next) {
			logger.Debug("Advanced to next day", "day", next)
			if h := e.opts.Hooks.OnDayAdvanced; h != nil {
				e.emit(func() { h(next) })
			}
		}
	}
	if e.opts.TransitionDelay <= 0 {
		advance()
		return
	}
	e.scheduleLocked(constants.TaskDayAdvance, e.opts.TransitionDelay, advance)
}

// scheduleLocked replaces any pending task called name with fn after d. fn
// runs under the engine lock; a task canceled after its timer fired is
// dropped by the id check.
func (e *Engine) scheduleLocked(name string, d time.Duration, fn func()) {
	e.cancelLocked(name)
	e.seq++
	id := e.seq
	task := e.opts.Scheduler.AfterFunc(d, func() {
		e.mu.Lock()
		p, ok := e.pending[name]
		if !ok || p.id != id || e.closed {
			e.mu.Unlock()
			return
		}
		delete(e.pending, name)
		fn()
		events := e.events
		e.events = nil
		e.mu.Unlock()
		dispatch(events)
	})
	e.pending[name] = pendingTask{id: id, task: task}
}

func (e *Engine) cancelLocked(name string) {
	if p, ok := e.pending[name]; ok {
		p.task.Stop()
		delete(e.pending, name)
	}
}

func (e *Engine) cancelAllLocked() {
	for name := range e.pending {
		e.cancelLocked(name)
	}
}

// Schedule runs fn after d unless it is canceled, replaced, or swept away by
// Reset, UnlockAll or Close. fn is called without the engine lock held.
func (e *Engine) Schedule(name string, d time.Duration, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.scheduleLocked(name, d, func() { e.emit(fn) })
}

// Cancel drops the pending task called name.
func (e *Engine) Cancel(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked(name)
}

// Pending reports whether a task called name is waiting to run.
func (e *Engine) Pending(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[name]
	return ok
}

// NavigateTo makes day the current day. Locked days return a
// *NavigationDeniedError and leave the state untouched. A pending day advance
// is canceled so it cannot override the user's choice.
func (e *Engine) NavigateTo(ctx context.Context, day int) error {
	return e.apply(ctx, true, func() error {
		if err := e.days.NavigateTo(day); err != nil {
			logger.Debug("Navigation denied", "day", day, "maxUnlockedDay", e.days.MaxUnlockedDay())
			return err
		}
		e.cancelLocked(constants.TaskDayAdvance)
		return nil
	})
}

// Graduate moves a user who has completed the final day into the role-based
// experience.
func (e *Engine) Graduate(ctx context.Context) error {
	return e.apply(ctx, true, func() error {
		if e.program.State() != models.AppStateOnboarding {
			return &InvalidTransitionError{From: e.program.State(), Action: "graduate"}
		}
		if !e.days.AllComplete() {
			return ErrNotReadyToGraduate
		}
		if err := e.program.Graduate(&e.snapshot.User); err != nil {
			return err
		}
		e.snapshot.AppState = e.program.State()
		e.cancelLocked(constants.TaskDayAdvance)
		logger.Info("Graduated", "role", e.snapshot.User.Role)
		if h := e.opts.Hooks.OnGraduate; h != nil {
			e.emit(h)
		}
		return nil
	})
}

// UnlockAll completes every day without going through module completion. It
// is a debugging affordance and only works when overrides are enabled.
func (e *Engine) UnlockAll(ctx context.Context) error {
	return e.apply(ctx, true, func() error {
		if !e.opts.AllowOverrides && !constants.DevBuild {
			return ErrOverrideDisabled
		}
		e.cancelAllLocked()
		e.days.UnlockAll(e.opts.Now(), e.opts.NewID)
		for _, t := range e.trackers {
			t.Restore(nil, true)
		}
		logger.Warn("All days unlocked via override")
		if h := e.opts.Hooks.OnUnlockAll; h != nil {
			e.emit(h)
		}
		return nil
	})
}

// Reset clears the stored snapshot and returns to role selection with a
// fresh profile.
func (e *Engine) Reset(ctx context.Context) error {
	return e.apply(ctx, false, func() error {
		e.cancelAllLocked()
		if err := e.store.Clear(ctx); err != nil {
			logger.Warn("Failed to clear stored snapshot", "error", err)
		}
		e.snapshot = models.PersistedSnapshot{
			AppState: models.AppStateRoleSelection,
			User:     e.program.Reset(),
		}
		e.rebuildLocked()
		logger.Info("Onboarding reset")
		if h := e.opts.Hooks.OnReset; h != nil {
			e.emit(h)
		}
		return nil
	})
}

// Import replaces the whole state with snapshot, which must be valid for the
// engine's curriculum, and persists it.
func (e *Engine) Import(ctx context.Context, snapshot models.PersistedSnapshot) error {
	return e.apply(ctx, true, func() error {
		if err := snapshot.Validate(e.curriculum.DayCount()); err != nil {
			return err
		}
		e.cancelAllLocked()
		e.snapshot = snapshot.Clone()
		e.rebuildLocked()
		logger.Info("Snapshot imported", "appState", e.snapshot.AppState, "onboardingDay", e.snapshot.User.OnboardingDay)
		return nil
	})
}

// Close cancels every pending task. The engine rejects further events.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.cancelAllLocked()
	e.closed = true
	return nil
}

// Snapshot returns a copy of the current durable state.
func (e *Engine) Snapshot() models.PersistedSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Clone()
}

// State returns the program state.
func (e *Engine) State() models.AppState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.program.State()
}

// CurrentDay returns the day the user is on.
func (e *Engine) CurrentDay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.days.CurrentDay()
}

// MaxUnlockedDay returns the highest unlocked day.
func (e *Engine) MaxUnlockedDay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.days.MaxUnlockedDay()
}

// DayCount returns the number of days in the program.
func (e *Engine) DayCount() int {
	return e.curriculum.DayCount()
}

// Curriculum returns the program layout the engine was opened with.
func (e *Engine) Curriculum() *curriculum.Curriculum {
	return e.curriculum
}

// Status returns the day controller's status for day.
func (e *Engine) Status(day int) models.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.days.Status(day)
}

// Modules returns the module records of day, or nil for an unknown day.
func (e *Engine) Modules(day int) []models.ModuleRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.trackers[day]
	if !ok {
		return nil
	}
	return t.Modules(e.days.Status(day) == models.StatusLocked)
}

// ReadyToGraduate reports whether the final day is complete.
func (e *Engine) ReadyToGraduate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.days.AllComplete()
}

package progression

import (
	"time"

	"github.com/julianstephens/dayone/internal/constants"
	"github.com/julianstephens/dayone/internal/models"
)

// overrideMarker is the module id recorded in a day's feed when the day was
// completed by the unlock-all override
const overrideMarker = "unlocked_via_override"

// DayController owns the current day and the unlock policy across days 1..N.
// The highest unlocked day is the profile's onboardingDay.
type DayController struct {
	dayCount int
	current  int
	profile  *models.UserProfile
}

// NewDayController creates a controller over profile for a program of dayCount days.
func NewDayController(dayCount int, profile *models.UserProfile) *DayController {
	if profile.DayProgress == nil {
		profile.DayProgress = make(map[int]models.DayProgressRecord)
	}
	if profile.OnboardingDay < constants.MinDay {
		profile.OnboardingDay = constants.MinDay
	}
	if profile.OnboardingDay > dayCount {
		profile.OnboardingDay = dayCount
	}
	return &DayController{
		dayCount: dayCount,
		current:  profile.OnboardingDay,
		profile:  profile,
	}
}

func (c *DayController) DayCount() int       { return c.dayCount }
func (c *DayController) CurrentDay() int     { return c.current }
func (c *DayController) MaxUnlockedDay() int { return c.profile.OnboardingDay }

// Status returns LOCKED, AVAILABLE or COMPLETED for day.
func (c *DayController) Status(day int) models.Status {
	if day < constants.MinDay || day > c.dayCount {
		return models.StatusLocked
	}
	if rec, ok := c.profile.DayProgress[day]; ok && rec.Completed {
		return models.StatusCompleted
	}
	if day > c.profile.OnboardingDay {
		return models.StatusLocked
	}
	return models.StatusAvailable
}

// NavigateTo makes day current unless it is locked.
func (c *DayController) NavigateTo(day int) error {
	if c.Status(day) == models.StatusLocked {
		return &NavigationDeniedError{Day: day, MaxUnlockedDay: c.profile.OnboardingDay}
	}
	c.current = day
	c.Visit(day)
	return nil
}

// Visit creates the record for day if it does not exist yet.
func (c *DayController) Visit(day int) models.DayProgressRecord {
	rec, ok := c.profile.DayProgress[day]
	if !ok {
		rec = models.DayProgressRecord{Day: day, Tasks: []models.TaskMarker{}}
		c.profile.DayProgress[day] = rec
	}
	return rec
}

// RecordTask appends a module completion to the day's feed.
func (c *DayController) RecordTask(day int, marker models.TaskMarker) {
	rec := c.Visit(day)
	if rec.HasModule(marker.ModuleID) {
		return
	}
	rec.Tasks = append(rec.Tasks, marker)
	c.profile.DayProgress[day] = rec
}

// SetModuleProgress records partial progress for moduleID on day. Values
// outside 1..99 remove the entry.
func (c *DayController) SetModuleProgress(day int, moduleID string, pct int) {
	rec := c.Visit(day)
	if pct < 1 || pct > 99 {
		if _, ok := rec.ModuleProgress[moduleID]; !ok {
			return
		}
		delete(rec.ModuleProgress, moduleID)
		if len(rec.ModuleProgress) == 0 {
			rec.ModuleProgress = nil
		}
	} else {
		if rec.ModuleProgress == nil {
			rec.ModuleProgress = make(map[string]int)
		}
		rec.ModuleProgress[moduleID] = pct
	}
	c.profile.DayProgress[day] = rec
}

// OnDaySatisfied marks day completed, once. When day is the highest unlocked
// day and not the last one, the next day is unlocked and returned so the
// caller can move the current day after its transition delay.
func (c *DayController) OnDaySatisfied(day int, now time.Time) (completed bool, next int, advance bool) {
	rec := c.Visit(day)
	if !rec.Completed {
		rec.Completed = true
		if rec.CompletedAt == "" {
			rec.CompletedAt = now.UTC().Format(constants.TimestampFormat)
		}
		c.profile.DayProgress[day] = rec
		completed = true
	}
	if day == c.profile.OnboardingDay && day < c.dayCount {
		c.profile.OnboardingDay = day + 1
		return completed, day + 1, true
	}
	return completed, 0, false
}

// ApplyAdvance moves the current day forward to day if it has been unlocked.
func (c *DayController) ApplyAdvance(day int) bool {
	if day > c.profile.OnboardingDay || day <= c.current {
		return false
	}
	c.current = day
	return true
}

// UnlockAll completes and unlocks every day. Days completed this way are
// flagged unlockedViaOverride; organic completion timestamps are kept.
func (c *DayController) UnlockAll(now time.Time, newID func() string) {
	stamp := now.UTC().Format(constants.TimestampFormat)
	for day := constants.MinDay; day <= c.dayCount; day++ {
		rec := c.Visit(day)
		if rec.Completed {
			continue
		}
		rec.Completed = true
		rec.CompletedAt = stamp
		rec.UnlockedViaOverride = true
		rec.Tasks = append(rec.Tasks, models.TaskMarker{
			ID:          newID(),
			ModuleID:    overrideMarker,
			CompletedAt: stamp,
			Source:      models.TaskSourceOverride,
		})
		c.profile.DayProgress[day] = rec
	}
	c.profile.OnboardingDay = c.dayCount
	c.current = c.dayCount
}

// AllComplete reports whether the final day is completed.
func (c *DayController) AllComplete() bool {
	return c.Status(c.dayCount) == models.StatusCompleted
}

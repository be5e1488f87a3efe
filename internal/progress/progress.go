// Package progress derives presentation percentages and statuses from the
// engine's state. Nothing here is persisted.
package progress

import (
	"math"

	"github.com/julianstephens/dayone/internal/models"
)

// StatusReader answers the day controller's LOCKED/AVAILABLE/COMPLETED question
type StatusReader interface {
	Status(day int) models.Status
}

// ModuleReader lists the module records of a day
type ModuleReader interface {
	Modules(day int) []models.ModuleRecord
}

// Reader is what Summary needs from the engine
type Reader interface {
	StatusReader
	ModuleReader
}

// DayRow is one line of the program summary
type DayRow struct {
	Day       int
	Status    models.Status
	Percent   int
	Completed int
	Total     int
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// ProgramProgressPercent returns round(100 * completed days / dayCount).
func ProgramProgressPercent(user models.UserProfile, dayCount int) int {
	return percent(user.CompletedDays(), dayCount)
}

// DayProgressPercent returns the share of completed modules, 0 for an empty day.
func DayProgressPercent(modules []models.ModuleRecord) int {
	return percent(countCompleted(modules), len(modules))
}

func countCompleted(modules []models.ModuleRecord) int {
	n := 0
	for _, m := range modules {
		if m.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

// FeedStatus refines the controller status with IN_PROGRESS for an available
// day that has some progress.
func FeedStatus(day int, days StatusReader, modules []models.ModuleRecord) models.Status {
	st := days.Status(day)
	if st == models.StatusAvailable && DayProgressPercent(modules) > 0 {
		return models.StatusInProgress
	}
	return st
}

// Summary returns one row per day of a dayCount-day program.
func Summary(r Reader, dayCount int) []DayRow {
	rows := make([]DayRow, 0, dayCount)
	for day := 1; day <= dayCount; day++ {
		modules := r.Modules(day)
		rows = append(rows, DayRow{
			Day:       day,
			Status:    FeedStatus(day, r, modules),
			Percent:   DayProgressPercent(modules),
			Completed: countCompleted(modules),
			Total:     len(modules),
		})
	}
	return rows
}

package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/dayone/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns today's date string (YYYY-MM-DD) in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDateFormat checks if the string is a YYYY-MM-DD date.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// DaysSince returns the number of whole calendar days from startDate to now.
// It is negative when the start date lies in the future.
func DaysSince(startDate string, now time.Time) (int, error) {
	loc := now.Location()
	start, err := ParseDateInLocation(startDate, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	// Round to absorb DST shifts.
	return int(math.Round(today.Sub(start).Hours() / 24)), nil
}

// FormatCompletedAt renders a stored RFC 3339 timestamp as a short local time,
// falling back to the raw value when it does not parse.
func FormatCompletedAt(ts string, loc *time.Location) string {
	t, err := time.Parse(constants.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("Jan 2 15:04")
}

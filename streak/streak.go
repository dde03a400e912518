// Package streak computes consecutive-day task completion streaks
package streak

import (
	"time"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
)

// Outcome describes how a streak changed after a completion.
type Outcome string

const (
	Unchanged   Outcome = "unchanged"
	Incremented Outcome = "incremented"
	Reset       Outcome = "reset"
)

// Update returns the streak that results from completing a task at now.
//
// A record already counted for the calendar day of now is returned as is. A
// record last active on the previous calendar day is extended by one. Any
// other record (a larger gap, a date in the future, a missing or unreadable
// date) restarts at 1. The longest streak never falls below the current one.
func Update(rec models.Streak, now time.Time) (models.Streak, Outcome) {
	today := timeutil.DayString(now)

	if rec.LastActiveDate == today {
		return rec, Unchanged
	}

	outcome := Reset
	current := 1

	if gap, ok := gapInDays(rec.LastActiveDate, now); ok && gap == 1 {
		outcome = Incremented
		current = rec.Current + 1
	}

	return models.Streak{
		Current:        current,
		Longest:        max(rec.Longest, current),
		LastActiveDate: today,
	}, outcome
}

// Displayed returns the current streak as it should be shown at now. A streak
// whose last active day is more than one day old, or in the future, is shown
// as 0; the stored record is only corrected on the next completion.
func Displayed(rec models.Streak, now time.Time) int {
	gap, ok := gapInDays(rec.LastActiveDate, now)
	if !ok {
		return 0
	}

	if gap < 0 || gap > 1 {
		return 0
	}

	return rec.Current
}

// gapInDays returns the number of calendar days between the last active day
// and now in now's location.
func gapInDays(lastActive string, now time.Time) (int, bool) {
	if lastActive == "" {
		return 0, false
	}

	last, err := timeutil.ParseDay(lastActive, now.Location())
	if err != nil {
		return 0, false
	}

	return timeutil.DaysBetween(last, now), true
}

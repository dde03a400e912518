// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	dps "github.com/markusmobius/go-dateparser"
)

// DayLayout is the layout of a calendar day string (e.g. 2024-01-02).
const DayLayout = "2006-01-02"

const (
	minutesInAnHour   = 60
	secondsInAMinute  = 60
	hoursInADay       = 24
	defaultPeriodDays = 90
)

var errParseDate = errors.New("unrecognised date")

type Period string

const (
	PeriodAllTime Period = "all-time"
	Period7Days   Period = "7days"
	Period14Days  Period = "14days"
	Period30Days  Period = "30days"
	Period90Days  Period = "90days"
)

// Range maps a reporting period to the number of days it covers.
var Range = map[Period]int{
	PeriodAllTime: defaultPeriodDays,
	Period7Days:   7,
	Period14Days:  14,
	Period30Days:  30,
	Period90Days:  90,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DayString returns the calendar day of t in its own location.
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a calendar day string in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// DaysBetween returns the number of calendar days from a to b. Wall clock
// times are ignored, so 23:59 and 00:01 on the next day are one day apart.
// DST transitions do not affect the result.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours() / hoursInADay)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// LastNDays returns the start of each of the n calendar days ending with the
// day of now, oldest first.
func LastNDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)

	today := RoundToStart(now)

	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}

	return days
}

// FromStr parses a date given in either an absolute format (2024-01-02,
// 02/01/2024 15:04) or a relative one (tomorrow, next monday, in 3 days).
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errParseDate
	}

	t, err := dateparse.ParseIn(s, now.Location())
	if err == nil {
		return t, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %s", errParseDate, s)
	}

	return dt.Time, nil
}

// keyLayout is a fixed-width RFC3339 layout so that keys sort chronologically.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}

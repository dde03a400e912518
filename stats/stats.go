// Package stats computes and reports study progress: focus minutes of
// completed tasks, completion rate, recorded sessions, subject performance
// and streaks
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
	"github.com/studytrack/studytrack/streak"
	"github.com/studytrack/studytrack/tracker"
)

const (
	topSubjects   = 5
	uncategorized = "Uncategorized"
)

// Report is the progress of a user over a reporting period. Task totals
// cover all of the user's tasks. Daily minutes and sessions are restricted
// to the period.
type Report struct {
	Period            timeutil.Period      `json:"period"`
	StartDate         string               `json:"start_date"`
	EndDate           string               `json:"end_date"`
	Daily             []DayTotal           `json:"daily"`
	Subjects          []SubjectPerformance `json:"subjects"`
	ActiveDates       []string             `json:"active_dates"`
	TotalFocusMinutes int                  `json:"total_focus_minutes"`
	CompletedTasks    int                  `json:"completed_tasks"`
	TotalTasks        int                  `json:"total_tasks"`
	CompletionRate    int                  `json:"completion_rate"`
	Sessions          int                  `json:"sessions"`
	SessionMinutes    int                  `json:"session_minutes"`
	CurrentStreak     int                  `json:"current_streak"`
	LongestStreak     int                  `json:"longest_streak"`
}

// DayTotal is the focus minutes of the tasks completed on a calendar day.
type DayTotal struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// SubjectPerformance is the number of completed tasks of a subject.
type SubjectPerformance struct {
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// Input is the data a report is computed from.
type Input struct {
	User     *models.User
	Subjects []*models.Subject
	Tasks    []*models.Task
	Sessions []*models.StudySession
}

// Days returns the number of days a period covers. Unknown periods cover
// seven days.
func Days(period timeutil.Period) int {
	n, ok := timeutil.Range[period]
	if !ok {
		return timeutil.Range[timeutil.Period7Days]
	}

	return n
}

// Compute builds the report for the period ending on the day of now.
func Compute(in Input, period timeutil.Period, now time.Time) *Report {
	days := timeutil.LastNDays(now, Days(period))
	start := days[0]

	r := &Report{
		Period:      period,
		StartDate:   timeutil.DayString(start),
		EndDate:     timeutil.DayString(now),
		Daily:       make([]DayTotal, len(days)),
		ActiveDates: []string{},
	}

	daily := make(map[string]int, len(days))
	active := make(map[string]bool)

	for _, task := range in.Tasks {
		r.TotalTasks++

		if !task.Completed {
			continue
		}

		r.CompletedTasks++
		r.TotalFocusMinutes += task.FocusMinutes

		if task.CompletedAt == nil {
			continue
		}

		day := timeutil.DayString(task.CompletedAt.In(now.Location()))
		active[day] = true
		daily[day] += task.FocusMinutes
	}

	for i, d := range days {
		day := timeutil.DayString(d)
		r.Daily[i] = DayTotal{Date: day, Minutes: daily[day]}
	}

	for day := range active {
		r.ActiveDates = append(r.ActiveDates, day)
	}

	slices.Sort(r.ActiveDates)

	if r.TotalTasks > 0 {
		r.CompletionRate = timeutil.Round(
			float64(r.CompletedTasks) / float64(r.TotalTasks) * 100,
		)
	}

	var sessionTime time.Duration

	for _, sess := range in.Sessions {
		if sess.StartTime.Before(start) || sess.StartTime.After(now) {
			continue
		}

		r.Sessions++
		sessionTime += sess.Duration
	}

	r.SessionMinutes = timeutil.Round(sessionTime.Minutes())
	r.Subjects = subjectPerformance(in.Subjects, in.Tasks)

	if in.User != nil {
		r.CurrentStreak = streak.Displayed(in.User.Streak, now)
		r.LongestStreak = in.User.Streak.Longest
	}

	return r
}

// subjectPerformance returns the subjects with the most completed tasks.
// Tasks whose subject no longer exists are counted as uncategorized.
func subjectPerformance(
	subjects []*models.Subject,
	tasks []*models.Task,
) []SubjectPerformance {
	titles := make(map[string]string, len(subjects))
	for _, s := range subjects {
		titles[s.ID] = s.Title
	}

	perf := make(map[string]*SubjectPerformance)
	order := make([]string, 0)

	for _, task := range tasks {
		key := task.SubjectID

		title, ok := titles[key]
		if !ok {
			key, title = "", uncategorized
		}

		p, ok := perf[key]
		if !ok {
			p = &SubjectPerformance{Title: title}
			perf[key] = p
			order = append(order, key)
		}

		p.Total++

		if task.Completed {
			p.Completed++
		}
	}

	result := make([]SubjectPerformance, 0, len(order))
	for _, key := range order {
		result = append(result, *perf[key])
	}

	slices.SortStableFunc(result, func(a, b SubjectPerformance) int {
		if c := cmp.Compare(b.Completed, a.Completed); c != 0 {
			return c
		}

		return cmp.Compare(a.Title, b.Title)
	})

	if len(result) > topSubjects {
		result = result[:topSubjects]
	}

	return result
}

// Load gathers the data of user and computes the report for period.
func Load(
	tr *tracker.Tracker,
	user *models.User,
	period timeutil.Period,
	now time.Time,
) (*Report, error) {
	subjects, err := tr.Subjects(user.ID)
	if err != nil {
		return nil, err
	}

	tasks, err := tr.Tasks(user.ID, "")
	if err != nil {
		return nil, err
	}

	start := timeutil.LastNDays(now, Days(period))[0]

	sessions, err := tr.Sessions(user.ID, start, now)
	if err != nil {
		return nil, err
	}

	return Compute(Input{
		User:     user,
		Subjects: subjects,
		Tasks:    tasks,
		Sessions: sessions,
	}, period, now), nil
}

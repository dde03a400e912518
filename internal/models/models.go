package models

import (
	"time"
)

const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
)

// PomodoroConfig holds a user's default timer durations in minutes.
type PomodoroConfig struct {
	FocusDuration int `json:"focus_duration"`
	BreakDuration int `json:"break_duration"`
}

// Streak is the consecutive-day task completion record of a user.
type Streak struct {
	// LastActiveDate is a calendar day string (2006-01-02) or empty if the
	// user never completed a task.
	LastActiveDate string `json:"last_active_date"`
	Current        int    `json:"current_streak"`
	Longest        int    `json:"longest_streak"`
}

// User is the profile document of a signed-in user.
type User struct {
	CreatedAt   time.Time      `json:"created_at"`
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	PhotoURL    string         `json:"photo_url"`
	Streak      Streak         `json:"streak"`
	Pomodoro    PomodoroConfig `json:"pomodoro_config"`
}

// Subject is a user-defined study topic that groups tasks.
type Subject struct {
	CreatedAt     time.Time  `json:"created_at"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
}

// Task is a unit of work inside a subject with its own focus and break
// durations.
type Task struct {
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	SubjectID    string     `json:"subject_id"`
	Title        string     `json:"title"`
	FocusMinutes int        `json:"pomodoro_minutes"`
	BreakMinutes int        `json:"break_minutes"`
	Completed    bool       `json:"completed"`
}

// FocusDuration returns the focus duration of the task.
func (t *Task) FocusDuration() time.Duration {
	return time.Duration(t.FocusMinutes) * time.Minute
}

// BreakDuration returns the break duration of the task.
func (t *Task) BreakDuration() time.Duration {
	return time.Duration(t.BreakMinutes) * time.Minute
}

// StudySession is a completed focus countdown.
type StudySession struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	SubjectID string        `json:"subject_id,omitempty"`
	TaskID    string        `json:"task_id,omitempty"`
	Duration  time.Duration `json:"duration"`
}

package tracker

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
	"github.com/studytrack/studytrack/streak"
)

// TaskUpdate lists the task fields to change. Nil fields are left alone.
type TaskUpdate struct {
	Title        *string
	SubjectID    *string
	FocusMinutes *int
	BreakMinutes *int
}

// ToggleResult reports the outcome of flipping a task's completion.
type ToggleResult struct {
	Task    *models.Task
	Outcome streak.Outcome
	Streak  models.Streak
	// StreakErr is set if the task was completed but the streak could not
	// be saved. The completion itself stands.
	StreakErr error
}

// CreateTask adds a task to a subject of userID.
func (t *Tracker) CreateTask(
	userID, subjectID, title string,
	focusMinutes, breakMinutes int,
) (*models.Task, error) {
	title, err := validTitle(title, "task")
	if err != nil {
		return nil, err
	}

	err = validDurations(focusMinutes, breakMinutes)
	if err != nil {
		return nil, err
	}

	subject, err := t.Subject(userID, subjectID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:           uuid.NewString(),
		UserID:       userID,
		SubjectID:    subject.ID,
		Title:        title,
		FocusMinutes: focusMinutes,
		BreakMinutes: breakMinutes,
		CreatedAt:    t.now(),
	}

	err = t.db.UpdateTask(task)
	if err != nil {
		return nil, storeErr("create task", err)
	}

	return task, nil
}

// Task returns the task of userID whose id is or starts with id.
func (t *Tracker) Task(userID, id string) (*models.Task, error) {
	fullID, err := t.db.ResolveID(store.Tasks, userID, id)
	if err != nil {
		return nil, storeErr("resolve task id", err)
	}

	task, err := t.db.GetTask(fullID)
	if err != nil {
		return nil, storeErr("get task", err)
	}

	if task.UserID != userID {
		return nil, store.ErrNotFound.Fmt("task")
	}

	return task, nil
}

// Tasks returns the tasks of userID, newest first. A non-empty subjectID
// (or id prefix) limits the result to that subject.
func (t *Tracker) Tasks(userID, subjectID string) ([]*models.Task, error) {
	if subjectID != "" {
		subject, err := t.Subject(userID, subjectID)
		if err != nil {
			return nil, err
		}

		subjectID = subject.ID
	}

	tasks, err := t.db.GetTasks(userID, subjectID)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}

	return tasks, nil
}

// UpdateTask applies upd to a task of userID. Moving a task requires the new
// subject to exist.
func (t *Tracker) UpdateTask(
	userID, id string,
	upd TaskUpdate,
) (*models.Task, error) {
	task, err := t.Task(userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title, err = validTitle(*upd.Title, "task")
		if err != nil {
			return nil, err
		}
	}

	if upd.FocusMinutes != nil {
		task.FocusMinutes = *upd.FocusMinutes
	}

	if upd.BreakMinutes != nil {
		task.BreakMinutes = *upd.BreakMinutes
	}

	err = validDurations(task.FocusMinutes, task.BreakMinutes)
	if err != nil {
		return nil, err
	}

	if upd.SubjectID != nil {
		subject, err := t.Subject(userID, *upd.SubjectID)
		if err != nil {
			return nil, err
		}

		task.SubjectID = subject.ID
	}

	err = t.db.UpdateTask(task)
	if err != nil {
		return nil, storeErr("update task", err, slog.String("task_id", task.ID))
	}

	return task, nil
}

// ToggleTask flips the completion of a task of userID. Completing a task
// records the completion time and updates the user's streak.
func (t *Tracker) ToggleTask(userID, id string) (*ToggleResult, error) {
	task, err := t.Task(userID, id)
	if err != nil {
		return nil, err
	}

	return t.setCompleted(task, !task.Completed)
}

// CompleteTask marks a task of userID as completed. A task that is already
// completed is left as is.
func (t *Tracker) CompleteTask(userID, id string) (*ToggleResult, error) {
	task, err := t.Task(userID, id)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return &ToggleResult{Task: task, Outcome: streak.Unchanged}, nil
	}

	return t.setCompleted(task, true)
}

func (t *Tracker) setCompleted(
	task *models.Task,
	completed bool,
) (*ToggleResult, error) {
	now := t.now()

	task.Completed = completed
	task.CompletedAt = nil

	if completed {
		task.CompletedAt = &now
	}

	err := t.db.UpdateTask(task)
	if err != nil {
		return nil, storeErr("update task", err, slog.String("task_id", task.ID))
	}

	res := &ToggleResult{
		Task:    task,
		Outcome: streak.Unchanged,
	}

	if !completed {
		return res, nil
	}

	res.Streak, res.Outcome, res.StreakErr = t.updateStreak(task.UserID, now)

	return res, nil
}

// updateStreak recomputes the streak of userID after a completion at now.
// Failures are logged and returned so the caller can warn about them.
func (t *Tracker) updateStreak(
	userID string,
	now time.Time,
) (models.Streak, streak.Outcome, error) {
	user, err := t.db.GetUser(userID)
	if err != nil {
		return models.Streak{}, streak.Unchanged, storeErr(
			"get user",
			err,
			slog.String("user_id", userID),
		)
	}

	rec, outcome := streak.Update(user.Streak, now)
	if outcome == streak.Unchanged {
		return rec, outcome, nil
	}

	stored := user.Streak
	user.Streak = rec

	err = t.db.UpdateUser(user)
	if err != nil {
		return stored, streak.Unchanged, storeErr(
			"update streak",
			err,
			slog.String("user_id", userID),
		)
	}

	slog.Debug(
		"streak updated",
		slog.String("outcome", string(outcome)),
		slog.Int("current", rec.Current),
		slog.Int("longest", rec.Longest),
	)

	return rec, outcome, nil
}

// DeleteTask removes a task of userID.
func (t *Tracker) DeleteTask(userID, id string) error {
	task, err := t.Task(userID, id)
	if err != nil {
		return err
	}

	return storeErr(
		"delete task",
		t.db.DeleteTasks(task.ID),
		slog.String("task_id", task.ID),
	)
}

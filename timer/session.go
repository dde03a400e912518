package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/tracker"
)

// recorder stores the outcome of finished countdowns.
type recorder struct {
	tracker  *tracker.Tracker
	user     *models.User
	task     *models.Task
	now      func() time.Time
	complete bool
}

// record saves a finished focus countdown as a study session and completes
// the task if requested. It returns a notice for the user, which is empty
// when there is nothing to report. Finished breaks are not recorded.
func (r *recorder) record(done Completion) (string, error) {
	if done.Finished != Focus {
		return "", nil
	}

	_, err := r.tracker.RecordSession(r.user.ID, r.task, done.StartedAt, r.now())
	if err != nil {
		return "", err
	}

	if !r.complete || r.task == nil || r.task.Completed {
		return "", nil
	}

	res, err := r.tracker.CompleteTask(r.user.ID, r.task.ID)
	if err != nil {
		return "", err
	}

	r.task = res.Task

	if res.StreakErr != nil {
		slog.Warn(
			"task completed without a streak update",
			slog.String("task_id", res.Task.ID),
			slog.Any("error", res.StreakErr),
		)

		return fmt.Sprintf(
			"Completed %q, but your streak could not be updated",
			res.Task.Title,
		), nil
	}

	return fmt.Sprintf(
		"Completed %q (streak: %d)",
		res.Task.Title,
		res.Streak.Current,
	), nil
}

package tracker

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studytrack/studytrack/internal/models"
)

// RecordSession stores a completed focus countdown that ran from start to
// end. task may be nil for countdowns that are not tied to a task.
func (t *Tracker) RecordSession(
	userID string,
	task *models.Task,
	start, end time.Time,
) (*models.StudySession, error) {
	sess := &models.StudySession{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	if task != nil {
		sess.TaskID = task.ID
		sess.SubjectID = task.SubjectID
	}

	err := t.db.UpdateSession(sess)
	if err != nil {
		return nil, storeErr("record session", err, slog.String("user_id", userID))
	}

	return sess, nil
}

// Sessions returns the study sessions of userID that started within
// [start, end].
func (t *Tracker) Sessions(
	userID string,
	start, end time.Time,
) ([]*models.StudySession, error) {
	sessions, err := t.db.GetSessions(userID, start, end)
	if err != nil {
		return nil, storeErr("list sessions", err)
	}

	return sessions, nil
}

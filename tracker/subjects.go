package tracker

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
	"github.com/studytrack/studytrack/store"
)

// SubjectUpdate lists the subject fields to change. Nil fields are left
// alone.
type SubjectUpdate struct {
	Title         *string
	Description   *string
	ScheduledDate *time.Time
	ClearDate     bool
}

// CreateSubject adds a subject for userID.
func (t *Tracker) CreateSubject(
	userID, title, description string,
	scheduledDate *time.Time,
) (*models.Subject, error) {
	title, err := validTitle(title, "subject")
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(description),
		ScheduledDate: scheduledDate,
		CreatedAt:     t.now(),
	}

	err = t.db.UpdateSubject(subject)
	if err != nil {
		return nil, storeErr("create subject", err)
	}

	return subject, nil
}

// Subject returns the subject of userID whose id is or starts with id.
func (t *Tracker) Subject(userID, id string) (*models.Subject, error) {
	fullID, err := t.db.ResolveID(store.Subjects, userID, id)
	if err != nil {
		return nil, storeErr("resolve subject id", err)
	}

	subject, err := t.db.GetSubject(fullID)
	if err != nil {
		return nil, storeErr("get subject", err)
	}

	if subject.UserID != userID {
		return nil, store.ErrNotFound.Fmt("subject")
	}

	return subject, nil
}

// Subjects returns the subjects of userID in natural title order.
func (t *Tracker) Subjects(userID string) ([]*models.Subject, error) {
	subjects, err := t.db.GetSubjects(userID)
	if err != nil {
		return nil, storeErr("list subjects", err)
	}

	sort.SliceStable(subjects, func(i, j int) bool {
		return natural.Less(
			strings.ToLower(subjects[i].Title),
			strings.ToLower(subjects[j].Title),
		)
	})

	return subjects, nil
}

// SubjectsOn returns the subjects of userID scheduled on the calendar day of
// day.
func (t *Tracker) SubjectsOn(
	userID string,
	day time.Time,
) ([]*models.Subject, error) {
	subjects, err := t.Subjects(userID)
	if err != nil {
		return nil, err
	}

	var scheduled []*models.Subject

	for _, s := range subjects {
		if s.ScheduledDate == nil {
			continue
		}

		if timeutil.SameDay(s.ScheduledDate.In(day.Location()), day) {
			scheduled = append(scheduled, s)
		}
	}

	return scheduled, nil
}

// UpdateSubject applies upd to a subject of userID.
func (t *Tracker) UpdateSubject(
	userID, id string,
	upd SubjectUpdate,
) (*models.Subject, error) {
	subject, err := t.Subject(userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		subject.Title, err = validTitle(*upd.Title, "subject")
		if err != nil {
			return nil, err
		}
	}

	if upd.Description != nil {
		subject.Description = strings.TrimSpace(*upd.Description)
	}

	if upd.ScheduledDate != nil {
		subject.ScheduledDate = upd.ScheduledDate
	}

	if upd.ClearDate {
		subject.ScheduledDate = nil
	}

	err = t.db.UpdateSubject(subject)
	if err != nil {
		return nil, storeErr("update subject", err, slog.String("subject_id", subject.ID))
	}

	return subject, nil
}

// DeleteSubject deletes a subject of userID together with its tasks and
// returns the number of tasks removed. Tasks are removed first so that a
// failure never leaves tasks without a subject.
func (t *Tracker) DeleteSubject(userID, id string) (int, error) {
	subject, err := t.Subject(userID, id)
	if err != nil {
		return 0, err
	}

	tasks, err := t.db.GetTasks(userID, subject.ID)
	if err != nil {
		return 0, storeErr("list tasks", err, slog.String("subject_id", subject.ID))
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	err = t.db.DeleteTasks(ids...)
	if err != nil {
		return 0, storeErr("delete tasks", err, slog.String("subject_id", subject.ID))
	}

	err = t.db.DeleteSubject(subject.ID)
	if err != nil {
		return 0, storeErr("delete subject", err, slog.String("subject_id", subject.ID))
	}

	slog.Info(
		"deleted subject",
		slog.String("subject_id", subject.ID),
		slog.Int("tasks", len(ids)),
	)

	return len(ids), nil
}

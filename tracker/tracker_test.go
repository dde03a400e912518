package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
	"github.com/studytrack/studytrack/streak"
)

var errDiskFull = errors.New("disk full")

// failingUserWrites rejects profile updates.
type failingUserWrites struct {
	store.DB
}

func (f failingUserWrites) UpdateUser(*models.User) error {
	return errDiskFull
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newTestTracker(t *testing.T) (*Tracker, *clock, string) {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "studytrack.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	user := &models.User{
		ID:    "user-1",
		Email: "ada@example.com",
		Pomodoro: models.PomodoroConfig{
			FocusDuration: models.DefaultFocusMinutes,
			BreakDuration: models.DefaultBreakMinutes,
		},
	}
	require.NoError(t, db.CreateUser(user))

	c := &clock{now: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)}

	tr := New(db)
	tr.now = c.Now

	return tr, c, user.ID
}

func TestCreateSubjectRequiresTitle(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	_, err := tr.CreateSubject(userID, "   ", "", nil)
	assert.ErrorIs(t, err, errTitleRequired)
}

func TestSubjectsNaturalOrder(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	for _, title := range []string{"Chapter 10", "chapter 2", "Algebra", "Chapter 1"} {
		_, err := tr.CreateSubject(userID, title, "", nil)
		require.NoError(t, err)
	}

	subjects, err := tr.Subjects(userID)
	require.NoError(t, err)

	var titles []string
	for _, s := range subjects {
		titles = append(titles, s.Title)
	}

	assert.Equal(t, []string{"Algebra", "Chapter 1", "chapter 2", "Chapter 10"}, titles)
}

func TestSubjectsOn(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	other := day.AddDate(0, 0, 1)

	_, err := tr.CreateSubject(userID, "Maths", "", &day)
	require.NoError(t, err)

	_, err = tr.CreateSubject(userID, "Physics", "", &other)
	require.NoError(t, err)

	_, err = tr.CreateSubject(userID, "History", "", nil)
	require.NoError(t, err)

	subjects, err := tr.SubjectsOn(userID, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Maths", subjects[0].Title)
}

func TestUpdateSubject(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	s, err := tr.CreateSubject(userID, "Maths", "", &day)
	require.NoError(t, err)

	title, desc := "Further maths", " proofs "

	got, err := tr.UpdateSubject(userID, s.ID[:8], SubjectUpdate{
		Title:       &title,
		Description: &desc,
		ClearDate:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Further maths", got.Title)
	assert.Equal(t, "proofs", got.Description)
	assert.Nil(t, got.ScheduledDate)
}

func TestCreateTaskRequiresOwnedSubject(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	_, err := tr.CreateTask(userID, "missing", "Read", 25, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)

	s, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	_, err = tr.CreateTask("someone-else", s.ID, "Read", 25, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = tr.CreateTask(userID, s.ID, "Read", 0, 5)
	assert.ErrorIs(t, err, errInvalidFocus)

	_, err = tr.CreateTask(userID, s.ID, "Read", 25, -1)
	assert.ErrorIs(t, err, errInvalidBreak)

	task, err := tr.CreateTask(userID, s.ID, "Read", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, s.ID, task.SubjectID)
}

func TestUpdateTaskMovesBetweenSubjects(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	maths, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	physics, err := tr.CreateSubject(userID, "Physics", "", nil)
	require.NoError(t, err)

	task, err := tr.CreateTask(userID, maths.ID, "Read", 25, 5)
	require.NoError(t, err)

	missing := "missing"

	_, err = tr.UpdateTask(userID, task.ID, TaskUpdate{SubjectID: &missing})
	assert.ErrorIs(t, err, store.ErrNotFound)

	focus := 40

	got, err := tr.UpdateTask(userID, task.ID, TaskUpdate{
		SubjectID:    &physics.ID,
		FocusMinutes: &focus,
	})
	require.NoError(t, err)

	assert.Equal(t, physics.ID, got.SubjectID)
	assert.Equal(t, 40, got.FocusMinutes)

	tasks, err := tr.Tasks(userID, maths.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteSubjectCascades(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	maths, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	physics, err := tr.CreateSubject(userID, "Physics", "", nil)
	require.NoError(t, err)

	for _, title := range []string{"a", "b", "c"} {
		_, err = tr.CreateTask(userID, maths.ID, title, 25, 5)
		require.NoError(t, err)
	}

	kept, err := tr.CreateTask(userID, physics.ID, "d", 25, 5)
	require.NoError(t, err)

	n, err := tr.DeleteSubject(userID, maths.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tasks, err := tr.Tasks(userID, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, kept.ID, tasks[0].ID)

	_, err = tr.Subject(userID, maths.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleTaskUpdatesStreak(t *testing.T) {
	tr, c, userID := newTestTracker(t)

	s, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	first, err := tr.CreateTask(userID, s.ID, "first", 25, 5)
	require.NoError(t, err)

	second, err := tr.CreateTask(userID, s.ID, "second", 25, 5)
	require.NoError(t, err)

	res, err := tr.ToggleTask(userID, first.ID)
	require.NoError(t, err)

	assert.True(t, res.Task.Completed)
	require.NotNil(t, res.Task.CompletedAt)
	assert.Equal(t, streak.Reset, res.Outcome)

	want := models.Streak{Current: 1, Longest: 1, LastActiveDate: "2024-01-01"}
	if diff := cmp.Diff(want, res.Streak); diff != "" {
		t.Fatalf("streak mismatch (-want +got):\n%s", diff)
	}

	c.now = c.now.Add(5 * time.Hour)

	res, err = tr.ToggleTask(userID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, streak.Incremented, res.Outcome)
	assert.Equal(t, 2, res.Streak.Current)

	res, err = tr.ToggleTask(userID, second.ID)
	require.NoError(t, err)
	assert.False(t, res.Task.Completed)
	assert.Nil(t, res.Task.CompletedAt)

	user, err := tr.db.GetUser(userID)
	require.NoError(t, err)
	assert.Equal(t, models.Streak{Current: 2, Longest: 2, LastActiveDate: "2024-01-02"}, user.Streak)
}

func TestToggleTaskStreakFailureKeepsCompletion(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	s, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	task, err := tr.CreateTask(userID, s.ID, "Read", 25, 5)
	require.NoError(t, err)

	tr.db = failingUserWrites{DB: tr.db}

	res, err := tr.ToggleTask(userID, task.ID)
	require.NoError(t, err)

	assert.True(t, res.Task.Completed)
	assert.ErrorIs(t, res.StreakErr, errDiskFull)
	assert.ErrorIs(t, res.StreakErr, ErrStoreOperation)
	assert.Equal(t, models.Streak{}, res.Streak)

	stored, err := tr.Task(userID, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
}

func TestCompleteTaskIsIdempotent(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	s, err := tr.CreateSubject(userID, "Maths", "", nil)
	require.NoError(t, err)

	task, err := tr.CreateTask(userID, s.ID, "Read", 25, 5)
	require.NoError(t, err)

	_, err = tr.CompleteTask(userID, task.ID)
	require.NoError(t, err)

	res, err := tr.CompleteTask(userID, task.ID)
	require.NoError(t, err)
	assert.True(t, res.Task.Completed)
	assert.Equal(t, streak.Unchanged, res.Outcome)
}

func TestRecordSession(t *testing.T) {
	tr, c, userID := newTestTracker(t)

	task := &models.Task{ID: "task-1", SubjectID: "subject-1"}
	start := c.now.Add(-25 * time.Minute)

	sess, err := tr.RecordSession(userID, task, start, c.now)
	require.NoError(t, err)

	assert.Equal(t, 25*time.Minute, sess.Duration)
	assert.Equal(t, "subject-1", sess.SubjectID)

	sessions, err := tr.Sessions(userID, start.Add(-time.Hour), c.now)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, sess.ID, sessions[0].ID)
}

func TestPomodoroConfig(t *testing.T) {
	tr, _, userID := newTestTracker(t)

	cfg, err := tr.PomodoroConfig(userID)
	require.NoError(t, err)
	assert.Equal(t, models.PomodoroConfig{FocusDuration: 25, BreakDuration: 5}, cfg)

	err = tr.SavePomodoroConfig(userID, models.PomodoroConfig{FocusDuration: 0})
	assert.ErrorIs(t, err, errInvalidFocus)

	want := models.PomodoroConfig{FocusDuration: 50, BreakDuration: 0}
	require.NoError(t, tr.SavePomodoroConfig(userID, want))

	cfg, err = tr.PomodoroConfig(userID)
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

// Package tracker implements the study tracking operations on top of the
// document store: subjects, tasks, completion streaks, study sessions and
// pomodoro settings.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/apperr"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
)

var (
	errTitleRequired = &apperr.Error{
		Message: "a %s title is required",
	}

	errInvalidFocus = &apperr.Error{
		Message: "focus duration must be at least 1 minute, got %d",
	}

	errInvalidBreak = &apperr.Error{
		Message: "break duration cannot be negative, got %d",
	}

	// ErrStoreOperation wraps failed reads and writes of the document store.
	ErrStoreOperation = &apperr.Error{
		Message: "store operation failed",
	}
)

// Tracker carries out study tracking operations for a user.
type Tracker struct {
	db  store.DB
	now func() time.Time
}

// New returns a Tracker backed by db.
func New(db store.DB) *Tracker {
	return &Tracker{
		db:  db,
		now: time.Now,
	}
}

// storeErr logs a failed store call and wraps it for the user. Lookup
// failures are returned unchanged.
func storeErr(op string, err error, attrs ...any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAmbiguousID) {
		return err
	}

	slog.Error(
		"store operation failed",
		append([]any{slog.String("op", op), slog.Any("error", err)}, attrs...)...,
	)

	return ErrStoreOperation.Wrap(fmt.Errorf("%s: %w", op, err))
}

func validTitle(title, kind string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errTitleRequired.Fmt(kind)
	}

	return title, nil
}

func validDurations(focus, brk int) error {
	if focus < 1 {
		return errInvalidFocus.Fmt(focus)
	}

	if brk < 0 {
		return errInvalidBreak.Fmt(brk)
	}

	return nil
}

// PomodoroConfig returns the user's default focus and break minutes.
func (t *Tracker) PomodoroConfig(userID string) (models.PomodoroConfig, error) {
	user, err := t.db.GetUser(userID)
	if err != nil {
		return models.PomodoroConfig{}, storeErr("get user", err)
	}

	return user.Pomodoro, nil
}

// SavePomodoroConfig stores the user's default focus and break minutes.
func (t *Tracker) SavePomodoroConfig(
	userID string,
	cfg models.PomodoroConfig,
) error {
	err := validDurations(cfg.FocusDuration, cfg.BreakDuration)
	if err != nil {
		return err
	}

	user, err := t.db.GetUser(userID)
	if err != nil {
		return storeErr("get user", err)
	}

	user.Pomodoro = cfg

	return storeErr("update user", t.db.UpdateUser(user))
}

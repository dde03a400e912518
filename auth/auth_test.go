package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
)

func newTestService(t *testing.T) (*Service, *store.Client) {
	t.Helper()

	keyring.MockInit()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "studytrack.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	s := New(db, "test")
	s.now = func() time.Time {
		return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	}

	return s, db
}

func TestCurrentWithoutSignIn(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSignInCreatesProfile(t *testing.T) {
	s, _ := newTestService(t)

	s.Defaults = models.PomodoroConfig{FocusDuration: 50, BreakDuration: 10}

	user, err := s.SignIn("", "Ada <ada@example.com>", "")
	require.NoError(t, err)

	assert.Equal(t, "ada", user.DisplayName)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.PomodoroConfig{FocusDuration: 50, BreakDuration: 10}, user.Pomodoro)

	current, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestSignInReusesProfile(t *testing.T) {
	s, _ := newTestService(t)

	first, err := s.SignIn("Ada", "ada@example.com", "")
	require.NoError(t, err)

	second, err := s.SignIn("Ada Lovelace", "ADA@example.com", "https://example.com/ada.png")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	current, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", current.DisplayName)
	assert.Equal(t, "https://example.com/ada.png", current.PhotoURL)
}

func TestSignInRejectsInvalidEmail(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.SignIn("Ada", "not-an-email", "")
	assert.ErrorIs(t, err, errInvalidEmail)
}

func TestSignOut(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.SignIn("Ada", "ada@example.com", "")
	require.NoError(t, err)

	require.NoError(t, s.SignOut())
	require.NoError(t, s.SignOut())

	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCurrentWithStaleSession(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, keyring.Set(keyringService, s.account, "deleted-user"))

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

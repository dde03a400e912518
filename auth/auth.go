// Package auth signs users in and out. The id of the signed-in user is kept
// in the OS keyring between invocations.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"

	"github.com/studytrack/studytrack/internal/apperr"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
)

const (
	keyringService = "studytrack"
	defaultAccount = "current_user"
)

var (
	ErrNotAuthenticated = &apperr.Error{
		Message: "you are not signed in: run 'studytrack login' first",
	}

	errInvalidEmail = &apperr.Error{
		Message: "%q is not a valid email address",
	}

	errKeyringUnavailable = &apperr.Error{
		Message: "the OS keyring is not available",
	}
)

// UserStore is the part of the document store that auth needs.
type UserStore interface {
	CreateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
}

// Service signs users in and resolves the current user.
type Service struct {
	db  UserStore
	now func() time.Time

	// Defaults seeds the pomodoro settings of new profiles.
	Defaults models.PomodoroConfig
	account  string
}

// New returns an auth service. A non-empty env keeps a separate signed-in
// user per environment.
func New(db UserStore, env string) *Service {
	account := defaultAccount
	if env != "" {
		account += "_" + env
	}

	return &Service{
		db:      db,
		now:     time.Now,
		account: account,
		Defaults: models.PomodoroConfig{
			FocusDuration: models.DefaultFocusMinutes,
			BreakDuration: models.DefaultBreakMinutes,
		},
	}
}

// SignIn finds the profile registered with email, creating it if necessary,
// and makes it the current user. A non-empty name or photo URL replaces the
// stored one.
func (s *Service) SignIn(name, email, photoURL string) (*models.User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, errInvalidEmail.Fmt(email)
	}

	user, err := s.db.GetUserByEmail(addr.Address)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if user == nil {
		user, err = s.register(name, addr.Address, photoURL)
		if err != nil {
			return nil, err
		}
	} else {
		err = s.refreshProfile(user, name, photoURL)
		if err != nil {
			return nil, err
		}
	}

	err = keyring.Set(keyringService, s.account, user.ID)
	if err != nil {
		return nil, errKeyringUnavailable.Wrap(err)
	}

	slog.Info("signed in", slog.String("user_id", user.ID))

	return user, nil
}

func (s *Service) register(name, email, photoURL string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user := &models.User{
		ID:          uuid.NewString(),
		DisplayName: strings.TrimSpace(name),
		Email:       email,
		PhotoURL:    strings.TrimSpace(photoURL),
		CreatedAt:   s.now(),
		Pomodoro:    s.Defaults,
	}

	err := s.db.CreateUser(user)
	if err != nil {
		return nil, fmt.Errorf("creating user profile: %w", err)
	}

	slog.Info("created user profile", slog.String("user_id", user.ID))

	return user, nil
}

func (s *Service) refreshProfile(user *models.User, name, photoURL string) error {
	name = strings.TrimSpace(name)
	photoURL = strings.TrimSpace(photoURL)

	changed := false

	if name != "" && name != user.DisplayName {
		user.DisplayName = name
		changed = true
	}

	if photoURL != "" && photoURL != user.PhotoURL {
		user.PhotoURL = photoURL
		changed = true
	}

	if !changed {
		return nil
	}

	err := s.db.UpdateUser(user)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}

	return nil
}

// SignOut forgets the current user. Signing out twice is not an error.
func (s *Service) SignOut() error {
	err := keyring.Delete(keyringService, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errKeyringUnavailable.Wrap(err)
	}

	return nil
}

// Current returns the signed-in user. ErrNotAuthenticated is returned if
// nobody is signed in or the stored profile no longer exists.
func (s *Service) Current() (*models.User, error) {
	id, err := keyring.Get(keyringService, s.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotAuthenticated
	}

	if err != nil {
		return nil, errKeyringUnavailable.Wrap(err)
	}

	user, err := s.db.GetUser(id)
	if errors.Is(err, store.ErrNotFound) {
		slog.Warn("signed-in user has no profile", slog.String("user_id", id))

		return nil, ErrNotAuthenticated
	}

	if err != nil {
		return nil, fmt.Errorf("loading user profile: %w", err)
	}

	return user, nil
}

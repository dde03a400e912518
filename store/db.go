package store

import (
	"time"

	"github.com/studytrack/studytrack/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// CreateUser stores a new profile document. It fails if a user with the
	// same email exists.
	CreateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	// UpdateUser overwrites an existing profile document
	UpdateUser(user *models.User) error

	// UpdateSubject creates a subject or overwrites it if it exists already
	UpdateSubject(subject *models.Subject) error
	GetSubject(id string) (*models.Subject, error)
	// GetSubjects returns all the subjects owned by a user
	GetSubjects(userID string) ([]*models.Subject, error)
	// DeleteSubject deletes a subject only. Its tasks are left in place.
	DeleteSubject(id string) error

	// UpdateTask creates a task or overwrites it if it exists already
	UpdateTask(task *models.Task) error
	GetTask(id string) (*models.Task, error)
	// GetTasks returns the tasks owned by a user, optionally restricted to a
	// single subject
	GetTasks(userID, subjectID string) ([]*models.Task, error)
	DeleteTasks(ids ...string) error

	// UpdateSession creates or overwrites a study session
	UpdateSession(sess *models.StudySession) error
	// GetSessions returns the study sessions of a user that started within
	// the given bounds
	GetSessions(userID string, startTime, endTime time.Time) ([]*models.StudySession, error)

	// ResolveID expands a unique id prefix within a collection owned by
	// userID
	ResolveID(c Collection, userID, prefix string) (string, error)
	// Subscribe registers for change events on documents owned by userID.
	// The returned function cancels the subscription.
	Subscribe(userID string) (<-chan Event, func())
	// Close ends the database connection
	Close() error
}

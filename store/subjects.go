package store

import (
	"errors"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/models"
)

// UpdateSubject creates a subject or overwrites it if it exists already.
func (c *Client) UpdateSubject(subject *models.Subject) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		return put(tx, Subjects, []byte(subject.ID), subject)
	})
	if err != nil {
		return err
	}

	c.publish(Event{
		Collection: Subjects,
		Op:         OpPut,
		ID:         subject.ID,
		UserID:     subject.UserID,
	})

	return nil
}

func (c *Client) GetSubject(id string) (*models.Subject, error) {
	var subject *models.Subject

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		subject, err = get[models.Subject](tx, Subjects, id)

		return err
	})

	return subject, err
}

// GetSubjects returns all the subjects owned by userID in key order.
func (c *Client) GetSubjects(userID string) ([]*models.Subject, error) {
	var subjects []*models.Subject

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		subjects, err = scan(tx, Subjects, func(s *models.Subject) bool {
			return s.UserID == userID
		})

		return err
	})

	return subjects, err
}

// DeleteSubject removes a subject. Deleting a missing subject is not an
// error.
func (c *Client) DeleteSubject(id string) error {
	var owner string

	err := c.db.Update(func(tx *bolt.Tx) error {
		subject, err := get[models.Subject](tx, Subjects, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		if err != nil {
			return err
		}

		owner = subject.UserID

		return tx.Bucket([]byte(Subjects)).Delete([]byte(id))
	})
	if err != nil {
		return err
	}

	if owner != "" {
		c.publish(Event{Collection: Subjects, Op: OpDelete, ID: id, UserID: owner})
	}

	return nil
}

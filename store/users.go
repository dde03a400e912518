package store

import (
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/models"
)

// CreateUser stores a new profile document. Emails are compared without
// regard to case.
func (c *Client) CreateUser(user *models.User) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		existing, err := findUserByEmail(tx, user.Email)
		if err != nil {
			return err
		}

		if existing != nil {
			return ErrEmailTaken.Fmt(user.Email)
		}

		return put(tx, Users, []byte(user.ID), user)
	})
	if err != nil {
		return err
	}

	c.publish(Event{Collection: Users, Op: OpPut, ID: user.ID, UserID: user.ID})

	return nil
}

func (c *Client) GetUser(id string) (*models.User, error) {
	var user *models.User

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		user, err = get[models.User](tx, Users, id)

		return err
	})

	return user, err
}

// GetUserByEmail returns the user registered with email.
func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	var user *models.User

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		user, err = findUserByEmail(tx, email)

		return err
	})
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrNotFound.Fmt(Users.singular())
	}

	return user, nil
}

// UpdateUser overwrites an existing profile document.
func (c *Client) UpdateUser(user *models.User) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(Users)).Get([]byte(user.ID)) == nil {
			return ErrNotFound.Fmt(Users.singular())
		}

		return put(tx, Users, []byte(user.ID), user)
	})
	if err != nil {
		return err
	}

	c.publish(Event{Collection: Users, Op: OpPut, ID: user.ID, UserID: user.ID})

	return nil
}

func findUserByEmail(tx *bolt.Tx, email string) (*models.User, error) {
	users, err := scan(tx, Users, func(u *models.User) bool {
		return strings.EqualFold(u.Email, strings.TrimSpace(email))
	})
	if err != nil || len(users) == 0 {
		return nil, err
	}

	return users[0], nil
}

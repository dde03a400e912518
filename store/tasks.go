package store

import (
	"cmp"
	"errors"
	"slices"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/models"
)

// UpdateTask creates a task or overwrites it if it exists already.
func (c *Client) UpdateTask(task *models.Task) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		return put(tx, Tasks, []byte(task.ID), task)
	})
	if err != nil {
		return err
	}

	c.publish(Event{
		Collection: Tasks,
		Op:         OpPut,
		ID:         task.ID,
		UserID:     task.UserID,
	})

	return nil
}

func (c *Client) GetTask(id string) (*models.Task, error) {
	var task *models.Task

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		task, err = get[models.Task](tx, Tasks, id)

		return err
	})

	return task, err
}

// GetTasks returns the tasks owned by userID, newest first. If subjectID is
// not empty, only the tasks of that subject are returned.
func (c *Client) GetTasks(userID, subjectID string) ([]*models.Task, error) {
	var tasks []*models.Task

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		tasks, err = scan(tx, Tasks, func(t *models.Task) bool {
			if t.UserID != userID {
				return false
			}

			return subjectID == "" || t.SubjectID == subjectID
		})

		return err
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(tasks, func(a, b *models.Task) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return tasks, nil
}

// DeleteTasks removes the specified tasks in a single transaction. Missing
// tasks are skipped.
func (c *Client) DeleteTasks(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	var events []Event

	err := c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(Tasks))

		for _, id := range ids {
			task, err := get[models.Task](tx, Tasks, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}

			if err != nil {
				return err
			}

			err = bucket.Delete([]byte(id))
			if err != nil {
				return err
			}

			events = append(events, Event{
				Collection: Tasks,
				Op:         OpDelete,
				ID:         id,
				UserID:     task.UserID,
			})
		}

		return nil
	})
	if err != nil {
		return err
	}

	c.publish(events...)

	return nil
}

package store

import (
	"bytes"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
)

// sessionKey orders sessions by start time. The id suffix keeps sessions
// that start at the same instant apart.
func sessionKey(sess *models.StudySession) []byte {
	return append(timeutil.ToKey(sess.StartTime), []byte("#"+sess.ID)...)
}

// UpdateSession creates a study session or overwrites it if it exists
// already.
func (c *Client) UpdateSession(sess *models.StudySession) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		return put(tx, Sessions, sessionKey(sess), sess)
	})
	if err != nil {
		return err
	}

	c.publish(Event{
		Collection: Sessions,
		Op:         OpPut,
		ID:         sess.ID,
		UserID:     sess.UserID,
	})

	return nil
}

// GetSessions returns the sessions of userID that started between startTime
// and endTime inclusive, oldest first. A zero startTime means no lower bound.
func (c *Client) GetSessions(
	userID string,
	startTime, endTime time.Time,
) ([]*models.StudySession, error) {
	var sessions []*models.StudySession

	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(Sessions)).Cursor()

		minKey := timeutil.ToKey(startTime)
		maxKey := timeutil.ToKey(endTime)

		for k, v := cur.Seek(minKey); k != nil; k, v = cur.Next() {
			if bytes.Compare(k[:min(len(k), len(maxKey))], maxKey) > 0 {
				break
			}

			var sess models.StudySession

			err := json.Unmarshal(v, &sess)
			if err != nil {
				return err
			}

			if sess.UserID != userID {
				continue
			}

			sessions = append(sessions, &sess)
		}

		return nil
	})

	return sessions, err
}

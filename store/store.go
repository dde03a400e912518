// Package store persists users, subjects, tasks and study sessions in a
// BoltDB file and notifies subscribers of changes
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/apperr"
)

var (
	ErrNotFound = &apperr.Error{
		Message: "%s not found",
	}

	ErrAmbiguousID = &apperr.Error{
		Message: "%q matches more than one %s: use a longer id",
	}

	ErrEmailTaken = &apperr.Error{
		Message: "a user with the email %s already exists",
	}

	errAlreadyRunning = &apperr.Error{
		Message: "is studytrack already running? Only one instance can be active at a time",
	}
)

// Collection names a bucket of documents.
type Collection string

const (
	Users    Collection = "users"
	Subjects Collection = "subjects"
	Tasks    Collection = "tasks"
	Sessions Collection = "sessions"
)

// singular returns the document name used in error messages.
func (c Collection) singular() string {
	return strings.TrimSuffix(string(c), "s")
}

// Client is a BoltDB database client.
type Client struct {
	db *bolt.DB

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(migrate)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Client{
		db:   db,
		subs: make(map[int]*subscriber),
	}, nil
}

// Close closes all subscriptions and releases the database file.
func (c *Client) Close() error {
	c.mu.Lock()

	for id, s := range c.subs {
		close(s.ch)
		delete(c.subs, id)
	}

	c.mu.Unlock()

	return c.db.Close()
}

// ResolveID expands prefix to the full id of a document in collection col
// owned by userID. An exact match always wins.
func (c *Client) ResolveID(col Collection, userID, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound.Fmt(col.singular())
	}

	var matches []string

	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(col)).Cursor()

		p := []byte(prefix)

		for k, v := cur.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = cur.Next() {
			var owner struct {
				UserID string `json:"user_id"`
			}

			err := json.Unmarshal(v, &owner)
			if err != nil {
				return err
			}

			if owner.UserID != userID {
				continue
			}

			if string(k) == prefix {
				matches = []string{prefix}

				return nil
			}

			matches = append(matches, string(k))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", ErrNotFound.Fmt(col.singular())
	case 1:
		return matches[0], nil
	default:
		return "", ErrAmbiguousID.Fmt(prefix, col.singular())
	}
}

// get decodes the document stored under key in bucket.
func get[T any](tx *bolt.Tx, col Collection, key string) (*T, error) {
	b := tx.Bucket([]byte(col)).Get([]byte(key))
	if b == nil {
		return nil, ErrNotFound.Fmt(col.singular())
	}

	var doc T

	err := json.Unmarshal(b, &doc)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// put encodes doc and stores it under key in bucket.
func put(tx *bolt.Tx, col Collection, key []byte, doc any) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(col)).Put(key, value)
}

// scan decodes every document in bucket for which keep returns true.
func scan[T any](tx *bolt.Tx, col Collection, keep func(*T) bool) ([]*T, error) {
	var docs []*T

	err := tx.Bucket([]byte(col)).ForEach(func(_, v []byte) error {
		var doc T

		err := json.Unmarshal(v, &doc)
		if err != nil {
			return err
		}

		if keep(&doc) {
			docs = append(docs, &doc)
		}

		return nil
	})

	return docs, err
}

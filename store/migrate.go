package store

import (
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/studytrack/studytrack/internal/apperr"
	"github.com/studytrack/studytrack/internal/models"
)

const (
	metaBucket    = "meta"
	schemaVersion = 2
)

var versionKey = []byte("schema_version")

var errNewerSchema = &apperr.Error{
	Message: "database schema version %d is newer than supported version %d: please upgrade studytrack",
}

// migrate creates the necessary buckets if they do not exist already and
// upgrades documents written by older versions.
func migrate(tx *bolt.Tx) error {
	for _, name := range []string{
		metaBucket,
		string(Users),
		string(Subjects),
		string(Tasks),
		string(Sessions),
	} {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
	}

	meta := tx.Bucket([]byte(metaBucket))

	var version uint64

	if v := meta.Get(versionKey); len(v) == 8 {
		version = binary.BigEndian.Uint64(v)
	}

	if version > schemaVersion {
		return errNewerSchema.Fmt(version, schemaVersion)
	}

	if version < 2 {
		err := migrateProfileDefaults(tx)
		if err != nil {
			return err
		}
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, schemaVersion)

	return meta.Put(versionKey, b)
}

// migrateProfileDefaults fills in the pomodoro config of profiles created
// before it was stored per user.
func migrateProfileDefaults(tx *bolt.Tx) error {
	bucket := tx.Bucket([]byte(Users))

	// writes are deferred until the cursor is done
	updated := make(map[string][]byte)

	cur := bucket.Cursor()

	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var u models.User

		err := json.Unmarshal(v, &u)
		if err != nil {
			return err
		}

		if u.Pomodoro.FocusDuration > 0 {
			continue
		}

		u.Pomodoro = models.PomodoroConfig{
			FocusDuration: models.DefaultFocusMinutes,
			BreakDuration: models.DefaultBreakMinutes,
		}

		b, err := json.Marshal(u)
		if err != nil {
			return err
		}

		updated[string(k)] = b
	}

	for k, v := range updated {
		err := bucket.Put([]byte(k), v)
		if err != nil {
			return err
		}
	}

	return nil
}

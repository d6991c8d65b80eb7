package store

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	. "github.com/quickread/quickread/pkg/store/storedefs"
)

const bucketCheckpoint = "checkpoint"

func init() {
	initDB["initialize checkpoint table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCheckpoint))
		return err
	}
}

// Checkpoint queries the saved checkpoint of a document.
func (s *dbStore) Checkpoint(docID string) (Checkpoint, error) {
	var c Checkpoint
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCheckpoint)).Get([]byte(docID))
		if v == nil {
			return ErrNoCheckpoint
		}
		return json.Unmarshal(v, &c)
	})
	return c, err
}

// SetCheckpoint saves the checkpoint of a document. The document must exist.
func (s *dbStore) SetCheckpoint(docID string, c Checkpoint) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketDocument)).Get([]byte(docID)) == nil {
			return ErrNoDocument
		}
		return tx.Bucket([]byte(bucketCheckpoint)).Put([]byte(docID), data)
	})
}

package store

import (
	"encoding/json"
	"sort"

	bolt "go.etcd.io/bbolt"

	. "github.com/quickread/quickread/pkg/store/storedefs"
)

const bucketDocument = "document"

func init() {
	initDB["initialize document table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDocument))
		return err
	}
}

// AddDocument adds a document to the library, replacing any document with the
// same ID. The checkpoint of a replaced document is kept.
func (s *dbStore) AddDocument(doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDocument)).Put([]byte(doc.ID), data)
	})
}

// Document queries the document with the given ID.
func (s *dbStore) Document(id string) (Document, error) {
	var doc Document
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDocument)).Get([]byte(id))
		if v == nil {
			return ErrNoDocument
		}
		return json.Unmarshal(v, &doc)
	})
	return doc, err
}

// Documents lists all documents, oldest first.
func (s *dbStore) Documents() ([]Document, error) {
	var docs []Document
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDocument)).ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				logger.Printf("skipping corrupt document %q: %v", k, err)
				return nil
			}
			docs = append(docs, doc)
			return nil
		})
	})
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Added.Before(docs[j].Added)
	})
	return docs, err
}

// DelDocument deletes a document and its checkpoint.
func (s *dbStore) DelDocument(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDocument))
		if b.Get([]byte(id)) == nil {
			return ErrNoDocument
		}
		if err := b.Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketCheckpoint)).Delete([]byte(id))
	})
}

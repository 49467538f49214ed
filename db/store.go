package db

import (
	"fmt"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
)

// recordsKey is the single key each store bucket uses; the whole sequence is
// rewritten under it on every Sync.
const recordsKey = "records"

// Store holds an ordered record sequence in memory, backed by one bucket of
// the bolt database. Records are loaded once at construction and written back
// wholesale on Sync. The store itself does no locking; callers that mutate
// Data from multiple goroutines must serialize access.
type Store[T any] struct {
	bucket string

	// Data is the live record sequence. Mutations only reach disk through Sync.
	Data []T
}

// NewStore loads the sequence stored under bucket. A missing bucket or key
// yields def; content that cannot be decoded is an error, which callers
// should treat as fatal at startup.
func NewStore[T any](bucket string, def []T) (*Store[T], error) {
	s := &Store[T]{
		bucket: bucket,
		Data:   def,
	}
	err := DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		b := bkt.Get([]byte(recordsKey))
		if b == nil {
			return nil
		}
		var data []T
		if err := jsoniter.Unmarshal(b, &data); err != nil {
			return fmt.Errorf("load store %v: %w", bucket, err)
		}
		s.Data = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Sync persists the current in-memory sequence, overwriting prior content.
func (s *Store[T]) Sync() error {
	b, err := jsoniter.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("sync store %v: %w", s.bucket, err)
	}
	return DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(s.bucket))
		if err != nil {
			return err
		}
		return bkt.Put([]byte(recordsKey), b)
	})
}

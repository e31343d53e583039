package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var drawingsBucket = []byte("drawings")

// BoltRecords keeps records in a single bbolt database file, one key per drawing.
type BoltRecords struct {
	db *bolt.DB
}

var _ Records = (*BoltRecords)(nil)

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltRecords, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(drawingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltRecords{db: db}, nil
}

func (b *BoltRecords) ReadAll() ([]Record, error) {
	var records []Record
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(drawingsBucket).ForEach(func(k, v []byte) error {
			// Values are only valid inside the transaction.
			data := make([]byte, len(v))
			copy(data, v)
			records = append(records, Record{Key: string(k), Data: data})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read drawings: %w", err)
	}
	return records, nil
}

func (b *BoltRecords) Write(key string, data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(drawingsBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *BoltRecords) Remove(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(drawingsBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (b *BoltRecords) Close() error {
	return b.db.Close()
}

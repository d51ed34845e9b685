package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// BucketGames holds one JSON record per game session, keyed by game ID.
	BucketGames = "games"

	boltOpenTimeout = time.Second
)

// NewBoltStorage - opens the bbolt file at path and creates the buckets the repositories use.
func NewBoltStorage(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketGames))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("can't create bucket: %w", err)
	}

	return db, nil
}

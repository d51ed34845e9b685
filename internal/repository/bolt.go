package repository

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
)

type boltGame struct {
	db *bolt.DB
}

// NewBoltGameRepository - stores games in the games bucket of a bbolt file.
// The bucket must exist, storage.NewBoltStorage creates it.
func NewBoltGameRepository(db *bolt.DB) GameRepository {
	return &boltGame{
		db: db,
	}
}

func (that *boltGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := marshalGame(game)
	if err != nil {
		return err
	}

	err = that.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(storage.BucketGames)).Put([]byte(gameKey(game.ID)), gameJSON)
	})
	if err != nil {
		return fmt.Errorf("failed to put game: %w", err)
	}

	return nil
}

func (that *boltGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	var data []byte

	err := that.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(storage.BucketGames)).Get([]byte(gameKey(id)))
		if value == nil {
			return apperror.ErrGameNotFound
		}

		// value is only valid inside the transaction
		data = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return unmarshalGame(data)
}

func (that *boltGame) DeleteByID(_ context.Context, id string) error {
	return that.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(storage.BucketGames))
		key := []byte(gameKey(id))

		if bucket.Get(key) == nil {
			return apperror.ErrGameNotFound
		}

		return bucket.Delete(key)
	})
}

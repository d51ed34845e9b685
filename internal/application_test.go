package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory storage", func(t *testing.T) {
		repo, closer, err := newGameRepository(ctx, &config.Config{Storage: config.StorageMemory})

		require.NoError(t, err)
		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Game{ID: "g", History: []entity.Board{{}}}))
		assert.NoError(t, closer.Close())
	})

	t.Run("Bolt storage", func(t *testing.T) {
		conf := &config.Config{
			Storage: config.StorageBolt,
			Bolt:    config.Bolt{Path: filepath.Join(t.TempDir(), "games.db")},
		}

		repo, closer, err := newGameRepository(ctx, conf)
		require.NoError(t, err)

		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Game{ID: "g", History: []entity.Board{{}}}))

		game, err := repo.GetByID(ctx, "g")
		require.NoError(t, err)
		assert.Equal(t, "g", game.ID)
		assert.NoError(t, closer.Close())
	})

	t.Run("Bolt without a path", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, &config.Config{Storage: config.StorageBolt})

		assert.ErrorIs(t, err, ErrPathNotFound)
	})

	t.Run("Redis without an address", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, &config.Config{Storage: config.StorageRedis})

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type repoFactory func(t *testing.T) (context.Context, GameRepository)

func sampleGame(id string) *entity.Game {
	game := tictactoe.NewGame(id)
	for _, cell := range []int{4, 0, 8} {
		game = tictactoe.ApplyMove(game, cell)
	}
	game = tictactoe.JumpTo(game, 2)

	return &game
}

// testGameRepository - behaviour every GameRepository implementation shares.
func testGameRepository(t *testing.T, newRepo repoFactory) {
	t.Helper()

	t.Run("CreateOrUpdate_And_GetByID", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a game with history and a cursor in the past
		game := sampleGame("123")

		// When: it is stored and read back
		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the history and cursor survive
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.History, retrievedGame.History)
		assert.Equal(t, 2, retrievedGame.StepNumber)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored game
		game := sampleGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: a move from the past is stored over it
		next := tictactoe.ApplyMove(*game, 2)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, &next))

		// Then: the truncated history is what is read back
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Len(t, retrievedGame.History, 4)
		assert.Equal(t, 3, retrievedGame.StepNumber)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored game
		game := sampleGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestUnmarshalGame(t *testing.T) {
	t.Run("Valid record", func(t *testing.T) {
		data, err := marshalGame(sampleGame("123"))
		require.NoError(t, err)

		game, err := unmarshalGame(data)

		require.NoError(t, err)
		assert.Equal(t, "123", game.ID)
	})

	t.Run("Broken JSON", func(t *testing.T) {
		_, err := unmarshalGame([]byte("{"))

		require.Error(t, err)
	})

	t.Run("Record that breaks the history rules", func(t *testing.T) {
		// Given: a record where O moved first
		data := []byte(`{"id":"123","history":[["","","","","","","","",""],["O","","","","","","","",""]],"step_number":1}`)

		// When: decoding it
		_, err := unmarshalGame(data)

		// Then: it is reported as corrupted
		require.ErrorIs(t, err, apperror.ErrCorruptedGame)
	})
}

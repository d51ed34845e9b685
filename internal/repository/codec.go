package repository

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const gameKeyPrefix = "game:"

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func marshalGame(game *entity.Game) ([]byte, error) {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return gameJSON, nil
}

// unmarshalGame - decodes a stored game and rejects records the engine could not have produced.
func unmarshalGame(data []byte) (*entity.Game, error) {
	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	if err := tictactoe.Validate(game); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	return &game, nil
}

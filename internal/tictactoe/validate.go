package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

var errMoveAfterWin = errors.New("move after the game was decided")

// Validate - checks that game could have been produced by NewGame, ApplyMove and JumpTo.
func Validate(game entity.Game) error {
	if len(game.History) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptedGame)
	}

	if !game.IsValidStep(game.StepNumber) {
		return fmt.Errorf("%w: step %d out of range [0, %d]", apperror.ErrCorruptedGame, game.StepNumber, len(game.History)-1)
	}

	if game.History[0] != (entity.Board{}) {
		return fmt.Errorf("%w: history does not start with an empty board", apperror.ErrCorruptedGame)
	}

	for step := 1; step < len(game.History); step++ {
		if err := validateTransition(game.History[step-1], game.History[step], step); err != nil {
			return fmt.Errorf("%w: step %d: %w", apperror.ErrCorruptedGame, step, err)
		}
	}

	return nil
}

// validateTransition - exactly one cell goes from empty to the mark of the player who moved.
func validateTransition(prev, next entity.Board, step int) error {
	if _, ok := CalculateWinner(prev); ok {
		return errMoveAfterWin
	}

	mover := entity.CellO
	if (step-1)%2 == 0 {
		mover = entity.CellX
	}

	changed := 0
	for i := range next {
		if !next[i].IsValid() {
			return fmt.Errorf("unknown mark %q in cell %d", next[i], i)
		}

		if prev[i] == next[i] {
			continue
		}

		if !prev[i].IsEmpty() {
			return fmt.Errorf("cell %d changed from %q to %q", i, prev[i], next[i])
		}

		if next[i] != mover {
			return fmt.Errorf("cell %d holds %q, expected %q", i, next[i], mover)
		}

		changed++
	}

	if changed != 1 {
		return fmt.Errorf("%d cells changed, expected 1", changed)
	}

	return nil
}

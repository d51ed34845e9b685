package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	statusWinner = "Winner: "
	statusNext   = "Next player: "
	statusDraw   = "draw"
)

// NewGame - returns a game whose history holds only the empty board.
func NewGame(id string) entity.Game {
	return entity.Game{
		ID:         id,
		History:    []entity.Board{{}},
		StepNumber: 0,
	}
}

// ApplyMove - places the mark of the player to move on cell and returns the new game.
// A move on a filled cell or on a decided board returns game unchanged.
// Any future left behind by JumpTo is dropped before the new board is appended.
func ApplyMove(game entity.Game, cell int) entity.Game {
	if !entity.IsValidIndex(cell) {
		panic(fmt.Sprintf("tictactoe: cell %d out of range", cell))
	}

	board := CurrentBoard(game)
	if _, ok := CalculateWinner(board); ok || !board[cell].IsEmpty() {
		return game
	}

	board[cell] = NextPlayer(game)

	// the new slice never shares its backing array with game.History
	history := make([]entity.Board, game.StepNumber+1, game.StepNumber+2)
	copy(history, game.History[:game.StepNumber+1])

	game.History = append(history, board)
	game.StepNumber = len(game.History) - 1

	return game
}

// JumpTo - moves the cursor to step. History is left as is.
func JumpTo(game entity.Game, step int) entity.Game {
	if !game.IsValidStep(step) {
		panic(fmt.Sprintf("tictactoe: step %d out of range [0, %d]", step, len(game.History)-1))
	}

	game.StepNumber = step

	return game
}

// CalculateWinner - checks the winning triples in order and returns the first complete one.
func CalculateWinner(board entity.Board) (entity.Win, bool) {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return entity.Win{Mark: a, Line: combo}, true
		}
	}

	return entity.Win{}, false
}

// CurrentBoard - returns a copy of the board at the cursor.
func CurrentBoard(game entity.Game) entity.Board {
	return game.History[game.StepNumber]
}

// XIsNext - X moves on even steps.
func XIsNext(game entity.Game) bool {
	return game.StepNumber%2 == 0
}

// NextPlayer - returns the mark placed by the next move.
func NextPlayer(game entity.Game) entity.Cell {
	if XIsNext(game) {
		return entity.CellX
	}
	return entity.CellO
}

// Phase - returns the state machine view of the board at the cursor.
func Phase(game entity.Game) entity.Phase {
	board := CurrentBoard(game)

	switch _, won := CalculateWinner(board); {
	case won:
		return entity.PhaseWon
	case board.IsFull():
		return entity.PhaseDrawn
	default:
		return entity.PhaseInProgress
	}
}

// GameStatus - returns the status line for the board at the cursor.
func GameStatus(game entity.Game) string {
	board := CurrentBoard(game)

	if win, ok := CalculateWinner(board); ok {
		return statusWinner + string(win.Mark)
	}

	// a full board without a winner, not a fixed move count
	if board.IsFull() {
		return statusDraw
	}

	return statusNext + string(NextPlayer(game))
}

package tictactoe

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	labelGameStart = "Go to game start"
	labelMove      = "Go to move #"
)

// Label - returns the history button text for step.
func Label(step int) string {
	if step == 0 {
		return labelGameStart
	}
	return labelMove + strconv.Itoa(step)
}

// HistoryLabels - returns one label per history entry.
func HistoryLabels(game entity.Game) []string {
	labels := make([]string, len(game.History))
	for step := range game.History {
		labels[step] = Label(step)
	}

	return labels
}

// Moves - describes every history entry together with the mark it placed.
func Moves(game entity.Game) []entity.Move {
	moves := make([]entity.Move, len(game.History))

	for step := range game.History {
		move := entity.Move{
			Step:    step,
			Label:   Label(step),
			Current: step == game.StepNumber,
		}

		if step > 0 {
			if cell, ok := placedCell(game.History[step-1], game.History[step]); ok {
				row, col := entity.Position(cell)
				move.Cell, move.Row, move.Col = &cell, &row, &col
				move.Mark = game.History[step][cell]
			}
		}

		moves[step] = move
	}

	return moves
}

// Project - builds the render-ready view of the game at its cursor.
// The winning cells are recomputed from the current board on every call.
func Project(game entity.Game) entity.View {
	board := CurrentBoard(game)

	view := entity.View{
		ID:            game.ID,
		Board:         board,
		Status:        GameStatus(game),
		Phase:         Phase(game),
		HistoryLabels: HistoryLabels(game),
		Moves:         Moves(game),
		StepNumber:    game.StepNumber,
		XIsNext:       XIsNext(game),
	}

	if win, ok := CalculateWinner(board); ok {
		line := win.Line
		view.WinningCells = &line
	}

	return view
}

// placedCell - returns the first cell that is empty in prev and filled in next.
func placedCell(prev, next entity.Board) (int, bool) {
	for i := range prev {
		if prev[i].IsEmpty() && !next[i].IsEmpty() {
			return i, true
		}
	}

	return 0, false
}

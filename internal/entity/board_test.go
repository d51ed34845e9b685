package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		assert.False(t, Board{}.IsFull())
	})

	t.Run("Board with one gap is not full", func(t *testing.T) {
		board := Board{CellX, CellO, CellX, CellO, CellX, CellO, CellO, CellX, CellEmpty}

		assert.False(t, board.IsFull())
	})

	t.Run("Board with every cell marked is full", func(t *testing.T) {
		board := Board{CellX, CellO, CellX, CellO, CellX, CellO, CellO, CellX, CellO}

		assert.True(t, board.IsFull())
	})
}

func TestBoard_Count(t *testing.T) {
	board := Board{CellX, CellO, CellX, CellEmpty, CellX}

	assert.Equal(t, 3, board.Count(CellX))
	assert.Equal(t, 1, board.Count(CellO))
	assert.Equal(t, 5, board.Count(CellEmpty))
}

func TestBoard_IsCopiedOnAssignment(t *testing.T) {
	// Given: a board and a copy of it
	original := Board{CellX}
	copied := original

	// When: the copy changes
	copied[1] = CellO

	// Then: the original is untouched
	assert.Equal(t, CellEmpty, original[1])
}

func TestPosition(t *testing.T) {
	tests := []struct {
		index    int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{4, 1, 1},
		{8, 2, 2},
	}

	for _, tt := range tests {
		row, col := Position(tt.index)

		assert.Equal(t, tt.row, row, "row of %d", tt.index)
		assert.Equal(t, tt.col, col, "col of %d", tt.index)
	}
}

func TestIsValidIndex(t *testing.T) {
	assert.True(t, IsValidIndex(0))
	assert.True(t, IsValidIndex(8))
	assert.False(t, IsValidIndex(-1))
	assert.False(t, IsValidIndex(9))
}

func TestCell_IsValid(t *testing.T) {
	assert.True(t, CellEmpty.IsValid())
	assert.True(t, CellX.IsValid())
	assert.True(t, CellO.IsValid())
	assert.False(t, Cell("Z").IsValid())
}

func TestGame_JSON(t *testing.T) {
	// Given: a game with two boards
	game := Game{
		ID:         "123",
		History:    []Board{{}, {CellEmpty, CellEmpty, CellEmpty, CellEmpty, CellX}},
		StepNumber: 1,
	}

	// When: it goes through JSON
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: empty cells are empty strings and the boards survive
	assert.Contains(t, string(data), `["","","","","X","","","",""]`)
	assert.Equal(t, game.History, decoded.History)
	assert.Equal(t, game.StepNumber, decoded.StepNumber)
}

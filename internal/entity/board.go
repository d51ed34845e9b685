package entity

const (
	CellEmpty Cell = ""
	CellX     Cell = "X"
	CellO     Cell = "O"
)

// BoardSize is the number of cells on the board, BoardSide is the length of one row.
const (
	BoardSize = 9
	BoardSide = 3
)

// WinCombos lists every winning triple: rows, then columns, then diagonals.
// The order decides which triple is reported when several are complete.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cell is the content of one square.
type Cell string

// IsEmpty reports whether no mark has been placed.
func (that Cell) IsEmpty() bool {
	return that == CellEmpty
}

// IsValid reports whether the cell holds one of the known values.
func (that Cell) IsValid() bool {
	return that == CellEmpty || that == CellX || that == CellO
}

// Board is the 3x3 grid, indexed 0-8 in row-major order.
// It is an array so every assignment copies it.
type Board [BoardSize]Cell

// Line is a winning triple of cell indexes.
type Line [3]int

// Win is the result of win detection: the mark and the triple that completed.
type Win struct {
	Mark Cell `json:"mark"`
	Line Line `json:"line"`
}

// IsFull reports whether every cell holds a mark.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// Count returns how many cells hold the given value.
func (that Board) Count(cell Cell) int {
	count := 0
	for _, c := range that {
		if c == cell {
			count++
		}
	}

	return count
}

// Position converts a cell index to its row and column.
func Position(index int) (int, int) {
	return index / BoardSide, index % BoardSide
}

// IsValidIndex reports whether index addresses a cell on the board.
func IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

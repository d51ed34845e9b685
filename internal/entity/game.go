package entity

import "time"

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseDrawn      Phase = "drawn"
)

// Phase is the state machine view of a game at its current step.
type Phase string

// Game is one session: the board history and the step currently shown.
// History entries are never modified in place once appended.
type Game struct {
	ID         string    `json:"id"`
	History    []Board   `json:"history"`
	StepNumber int       `json:"step_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsValidStep reports whether step points into the history.
func (that *Game) IsValidStep(step int) bool {
	return step >= 0 && step < len(that.History)
}

// Move describes one history entry for a move list.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Mark    Cell   `json:"mark,omitempty"`
	Cell    *int   `json:"cell,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Col     *int   `json:"col,omitempty"`
	Current bool   `json:"current"`
}

// View is the render-ready projection of a game.
type View struct {
	ID            string   `json:"id"`
	Board         Board    `json:"board"`
	Status        string   `json:"status"`
	Phase         Phase    `json:"phase"`
	WinningCells  *Line    `json:"winning_cells"`
	HistoryLabels []string `json:"history_labels"`
	Moves         []Move   `json:"moves"`
	StepNumber    int      `json:"step_number"`
	XIsNext       bool     `json:"x_is_next"`
}

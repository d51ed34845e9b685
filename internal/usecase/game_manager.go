package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager turns UI events into engine calls on stored sessions.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	now   func() time.Time
	newID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,

		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateGame - starts a new session on an empty board.
func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := tictactoe.NewGame(that.newID())
	game.CreatedAt = that.now()
	game.UpdatedAt = game.CreatedAt

	if err := that.gameRepo.CreateOrUpdate(ctx, &game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return &game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetView - returns the render projection of the game at its current step.
func (that *GameManager) GetView(ctx context.Context, id string) (*entity.View, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	view := tictactoe.Project(*game)

	return &view, nil
}

// ClickCell - handles a click on cell. Clicks the engine rejects leave the stored game untouched.
func (that *GameManager) ClickCell(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "ClickCell", "gameID", id, "cell", cell)

	if !entity.IsValidIndex(cell) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidCell, cell)
	}

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	next := tictactoe.ApplyMove(*game, cell)
	if next.StepNumber == game.StepNumber {
		log.Debug("move ignored", "status", tictactoe.GameStatus(*game))
		return game, nil
	}

	if err = that.updateGame(ctx, &next); err != nil {
		return nil, err
	}

	log.Debug("move applied", "step", next.StepNumber, "status", tictactoe.GameStatus(next))

	return &next, nil
}

// JumpTo - moves the game to an earlier or later step of its history.
func (that *GameManager) JumpTo(ctx context.Context, id string, step int) (*entity.Game, error) {
	log := that.logger.With("method", "JumpTo", "gameID", id, "step", step)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsValidStep(step) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrInvalidStep, step, len(game.History)-1)
	}

	next := tictactoe.JumpTo(*game, step)

	if err = that.updateGame(ctx, &next); err != nil {
		return nil, err
	}

	log.Debug("jumped", "status", tictactoe.GameStatus(next))

	return &next, nil
}

// EndGame - discards the session.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = that.now()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

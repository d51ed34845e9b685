package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	actionGameNew     = "game:new"
	actionGameView    = "game:view"
	actionCellClick   = "cell:click"
	actionHistoryJump = "history:jump"
	actionGameEnd     = "game:end"
	actionError       = "error"
)

// Payload - body of both requests and replies. Requests fill the identifiers, replies carry Game or Error.
type Payload struct {
	GameID string       `json:"game_id,omitempty"`
	Cell   *int         `json:"cell,omitempty"`
	Step   *int         `json:"step,omitempty"`
	Game   *entity.View `json:"game,omitempty"`
	Ended  bool         `json:"ended,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	game, err := that.games.CreateGame(ctx)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.subscribe(game.ID, conn)

	log.Info("new game created", "game_id", game.ID)

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handleViewGame(ctx context.Context, msg *Message, conn *connection) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	view, err := that.games.GetView(ctx, payload.GameID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.subscribe(view.ID, conn)

	return conn.sendMessage(msg.Action, Payload{GameID: view.ID, Game: view})
}

func (that *Server) handleCellClick(ctx context.Context, msg *Message, conn *connection) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if payload.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell))
	}

	game, err := that.games.ClickCell(ctx, payload.GameID, *payload.Cell)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.subscribe(game.ID, conn)
	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleHistoryJump(ctx context.Context, msg *Message, conn *connection) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if payload.Step == nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: step is required", apperror.ErrInvalidStep))
	}

	game, err := that.games.JumpTo(ctx, payload.GameID, *payload.Step)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.subscribe(game.ID, conn)
	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleEndGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleEndGame")

	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if err = that.games.EndGame(ctx, payload.GameID); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	that.subscribe(payload.GameID, conn)
	that.broadcast(payload.GameID, msg.Action, Payload{GameID: payload.GameID, Ended: true}, true)

	log.Info("game ended", "game_id", payload.GameID)

	return nil
}

func (that *Server) sendGame(conn *connection, action string, game *entity.Game) error {
	view := tictactoe.Project(*game)

	return conn.sendMessage(action, Payload{GameID: game.ID, Game: &view})
}

func (that *Server) broadcastGame(action string, game *entity.Game) {
	view := tictactoe.Project(*game)

	that.broadcast(game.ID, action, Payload{GameID: game.ID, Game: &view}, false)
}

// sendErrorResponse - replies with the error text. Unexpected errors are hidden from the client.
func (that *Server) sendErrorResponse(conn *connection, action string, err error) error {
	message := "internal error"

	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidStep),
		errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, errMalformedPayload):
		message = err.Error()
	default:
		that.logger.Error("request failed", "action", action, "error", err)
	}

	if sendErr := conn.sendMessage(action, Payload{Error: message}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	return nil
}

var errMalformedPayload = errors.New("malformed payload")

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", errMalformedPayload, err)
	}

	return payload, nil
}

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const errInternal = "internal error"

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeGame(w, http.StatusCreated, game)
}

func (that *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.GetView(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) ClickCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		that.writeError(w, "ClickCell", fmt.Errorf("%w: %q", apperror.ErrInvalidCell, r.PathValue("cell")))
		return
	}

	game, err := that.games.ClickCell(r.Context(), r.PathValue("id"), cell)
	if err != nil {
		that.writeError(w, "ClickCell", err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *Server) JumpTo(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		that.writeError(w, "JumpTo", fmt.Errorf("%w: %q", apperror.ErrInvalidStep, r.PathValue("step")))
		return
	}

	game, err := that.games.JumpTo(r.Context(), r.PathValue("id"), step)
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *Server) EndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "EndGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) writeGame(w http.ResponseWriter, status int, game *entity.Game) {
	that.writeJSON(w, status, tictactoe.Project(*game))
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// writeError - maps service errors to HTTP status codes. Unexpected errors are hidden from the client.
func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidStep):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errInternal})
	}
}

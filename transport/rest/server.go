package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetView(ctx context.Context, id string) (*entity.View, error)
	ClickCell(ctx context.Context, id string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, id string, step int) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	games  gameManager
}

func New(logger *slog.Logger, games gameManager) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Handler - returns the HTTP routes of the game API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.PingHandler)

	mux.HandleFunc("POST /games", that.CreateGame)
	mux.HandleFunc("GET /games/{id}", that.GetGame)
	mux.HandleFunc("DELETE /games/{id}", that.EndGame)
	mux.HandleFunc("POST /games/{id}/cells/{cell}", that.ClickCell)
	mux.HandleFunc("POST /games/{id}/history/{step}", that.JumpTo)

	return mux
}

// Start - serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

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

type handlerFunc func(ctx context.Context, message *Message, conn *connection) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	// subscribers maps a game ID to the connections watching it.
	subscribersMutex sync.Mutex
	subscribers      map[string]map[*connection]struct{}
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// sessions are addressed by game ID, no cookies are involved
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]handlerFunc),
		subscribers: make(map[string]map[*connection]struct{}),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameView] = server.handleViewGame
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionHistoryJump] = server.handleHistoryJump
	server.handlers[actionGameEnd] = server.handleEndGame

	return server
}

// Handler - returns the HTTP handler performing the WebSocket upgrade on /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until either side closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	conn := newConnection(ws)
	go conn.writePump()

	stop := context.AfterFunc(ctx, conn.close)

	defer func() {
		stop()
		that.unsubscribeAll(conn)
		conn.close()
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed", "remote", req.RemoteAddr)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.ws.SetReadLimit(maxMessageSize)
	if err := conn.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			log.Debug("read loop stopped", "error", err)
			return nil
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = conn.sendMessage(actionError, Payload{Error: "malformed message"}); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = conn.sendMessage(message.Action, Payload{Error: "unknown action"}); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) subscribe(gameID string, conn *connection) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	conns, ok := that.subscribers[gameID]
	if !ok {
		conns = make(map[*connection]struct{})
		that.subscribers[gameID] = conns
	}

	conns[conn] = struct{}{}
}

func (that *Server) unsubscribeAll(conn *connection) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	for gameID, conns := range that.subscribers {
		delete(conns, conn)

		if len(conns) == 0 {
			delete(that.subscribers, gameID)
		}
	}
}

// watchers - returns the connections subscribed to gameID. With drop set the subscription list is removed.
func (that *Server) watchers(gameID string, drop bool) []*connection {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	conns := make([]*connection, 0, len(that.subscribers[gameID]))
	for conn := range that.subscribers[gameID] {
		conns = append(conns, conn)
	}

	if drop {
		delete(that.subscribers, gameID)
	}

	return conns
}

// broadcast - sends the message to every connection watching gameID.
func (that *Server) broadcast(gameID, action string, payload Payload, drop bool) {
	log := that.logger.With("method", "broadcast")

	for _, conn := range that.watchers(gameID, drop) {
		if err := conn.sendMessage(action, payload); err != nil {
			log.Warn("failed to notify watcher", "game_id", gameID, "error", err)
		}
	}
}

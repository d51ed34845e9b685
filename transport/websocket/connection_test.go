package websocket

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledConnection - a connection whose writer never runs, like a client that stopped reading.
func stalledConnection() *connection {
	return &connection{
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func TestConnection_SendMessage(t *testing.T) {
	t.Run("Full queue closes the connection", func(t *testing.T) {
		// Given: a connection nobody drains
		conn := stalledConnection()

		// When: more messages are queued than it can hold
		for range sendBufferSize {
			require.NoError(t, conn.sendMessage(actionCellClick, Payload{GameID: "g"}))
		}

		err := conn.sendMessage(actionCellClick, Payload{GameID: "g"})

		// Then: the send fails fast and the connection is closed
		require.ErrorIs(t, err, ErrSlowConsumer)
		assert.ErrorIs(t, conn.sendMessage(actionCellClick, Payload{}), ErrConnectionClosed)

		select {
		case <-conn.done:
		default:
			t.Fatal("connection was not closed")
		}
	})

	t.Run("Close is idempotent", func(t *testing.T) {
		conn := stalledConnection()

		conn.close()

		assert.NotPanics(t, conn.close)
	})
}

func TestBroadcast_StalledWatcher(t *testing.T) {
	server := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	// Given: a healthy watcher and one that never reads
	stalled := stalledConnection()
	healthy := stalledConnection()
	server.subscribe("g", stalled)
	server.subscribe("g", healthy)

	// When: many updates are broadcast while the healthy one keeps draining
	finished := make(chan struct{})
	go func() {
		defer close(finished)

		for range 4 * sendBufferSize {
			server.broadcast("g", actionCellClick, Payload{GameID: "g"}, false)
			<-healthy.send
		}
	}()

	// Then: broadcasting never blocks and the stalled watcher is dropped
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a watcher that never reads")
	}

	select {
	case <-stalled.done:
	default:
		t.Fatal("stalled watcher was not closed")
	}

	select {
	case <-healthy.done:
		t.Fatal("healthy watcher was closed")
	default:
	}
}

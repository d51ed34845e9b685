package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	sendBufferSize = 16
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSlowConsumer     = errors.New("send queue is full")
)

// connection owns the write side of one client. Messages are queued and written by writePump,
// so a client that stops reading never blocks the sender.
type connection struct {
	ws *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(ws *websocket.Conn) *connection {
	return &connection{
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// sendMessage - queues the message. A connection whose queue is full is closed.
func (that *connection) sendMessage(action string, payload Payload) error {
	response, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	select {
	case <-that.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case that.send <- response:
		return nil
	default:
		that.close()
		return ErrSlowConsumer
	}
}

func (that *connection) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// writePump - writes queued messages and keepalive pings until the connection is closed.
func (that *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = that.ws.Close()
	}()

	for {
		select {
		case message := <-that.send:
			if err := that.write(websocket.TextMessage, message); err != nil {
				that.close()
				return
			}
		case <-ticker.C:
			if err := that.write(websocket.PingMessage, nil); err != nil {
				that.close()
				return
			}
		case <-that.done:
			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = that.ws.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait))
			return
		}
	}
}

func (that *connection) write(messageType int, data []byte) error {
	if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return that.ws.WriteMessage(messageType, data)
}

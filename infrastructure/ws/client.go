package ws

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"chat-relay/errors"

	"github.com/gorilla/websocket"
)

// Client adapts a gorilla websocket connection to the relay's Peer contract.
// Outbound payloads go through a buffered channel drained by a single write
// pump, so Send never blocks the router: a full buffer or a closed client is
// an immediate delivery failure.
type Client struct {
	log  *slog.Logger
	conn *websocket.Conn
	send chan []byte

	writeTimeout time.Duration
	pongTimeout  time.Duration

	closeOnce sync.Once
	done      chan struct{}
	pumping   atomic.Bool
}

func NewClient(log *slog.Logger, conn *websocket.Conn,
	bufferSize int, writeTimeout, pongTimeout time.Duration) *Client {
	return &Client{
		log:          log,
		conn:         conn,
		send:         make(chan []byte, bufferSize),
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
		done:         make(chan struct{}),
	}
}

// Send enqueues one payload for the write pump.
func (c *Client) Send(payload []byte) error {
	select {
	case <-c.done:
		return errors.ErrConnectionClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errors.ErrDeliveryFailed
	}
}

// Close signals shutdown. When the write pump is running it owns the raw
// socket: it flushes queued payloads, sends the close frame and closes the
// connection itself. Without a pump the socket is closed here directly.
// Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if !c.pumping.Load() {
			err = c.conn.Close()
		}
	})
	return err
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings. Must run in its own goroutine,
// exactly once per client, started before the client is handed to the
// relay. Any write failure ends the pump; the read side notices the dead
// socket and tears the session down.
func (c *Client) WritePump() {
	c.pumping.Store(true)

	pingPeriod := c.pongTimeout * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.flush()
			return
		case payload := <-c.send:
			if err := c.write(payload); err != nil {
				c.log.Debug("Write failed, stopping pump", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flush drains payloads enqueued before Close, then says goodbye properly.
func (c *Client) flush() {
	for {
		select {
		case payload := <-c.send:
			if err := c.write(payload); err != nil {
				return
			}
		default:
			deadline := time.Now().Add(c.writeTimeout)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		}
	}
}

func (c *Client) write(payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

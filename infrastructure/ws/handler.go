package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/relay"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const maxMessageSize = 8192

// Options bound the transport behavior of every accepted socket.
type Options struct {
	BufferSize   int
	WriteTimeout time.Duration
	PongTimeout  time.Duration
}

// Handler upgrades HTTP requests to websocket sessions and pumps client
// events into the relay core. One goroutine reads, one writes, and the
// session owns the teardown.
type Handler struct {
	log        *slog.Logger
	opts       Options
	tokens     contract.ITokenService
	registry   contract.IRegistry
	membership contract.IMembershipIndex
	dispatcher contract.IDispatcher
	upgrader   websocket.Upgrader
}

func NewHandler(log *slog.Logger, opts Options, tokens contract.ITokenService,
	registry contract.IRegistry, membership contract.IMembershipIndex,
	dispatcher contract.IDispatcher) *Handler {
	return &Handler{
		log:        log,
		opts:       opts,
		tokens:     tokens,
		registry:   registry,
		membership: membership,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handle runs the whole lifecycle of one socket: upgrade, authenticate from
// the request credential, then serve the event loop until the peer leaves.
func (h *Handler) Handle(c *gin.Context) {
	token := extractToken(c.Request)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Info("Upgrade failed", "error", err)
		return
	}

	client := NewClient(h.log, conn, h.opts.BufferSize, h.opts.WriteTimeout, h.opts.PongTimeout)
	go client.WritePump()

	connection := domain.NewConnection(client)
	session := relay.NewSession(h.log, connection, h.tokens, h.registry, h.membership, h.dispatcher)

	if err := session.Accept(); err != nil {
		session.Close()
		return
	}

	// The credential travels with the HTTP request, so authentication
	// happens before the first frame is read. A bad token is terminal;
	// the session reports the rejection to the peer itself.
	if err := session.Authenticate(token); err != nil {
		return
	}

	h.readLoop(c, session, client, conn)
}

func (h *Handler) readLoop(c *gin.Context, session *relay.Session, client *Client, conn *websocket.Conn) {
	defer session.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.opts.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.opts.PongTimeout))
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Read failed", "conn", session.Connection().ID, "error", err)
			}
			return
		}

		var event domain.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			// A malformed frame is reported to the offender; the session
			// stays open.
			h.sendError(client, errors.ErrUnexpectedEvent)
			continue
		}

		if err := h.handleEvent(c, session, event); err != nil {
			h.sendError(client, err)
			if session.Connection().IsClosed() {
				return
			}
		}
	}
}

func (h *Handler) handleEvent(c *gin.Context, session *relay.Session, event domain.Event) error {
	switch event.Type {
	case domain.EventJoinRoom:
		if err := session.JoinRoom(c.Request.Context(), event.Room); err != nil {
			return err
		}
		joined := domain.Event{Type: domain.EventJoined, Room: event.Room}
		payload, err := json.Marshal(joined)
		if err != nil {
			return err
		}
		return session.Connection().Peer.Send(payload)
	case domain.EventSendMessage:
		return session.Send(c.Request.Context(), event.Room, event.Content)
	default:
		return errors.ErrUnexpectedEvent
	}
}

// sendError reports a failure to the offending client only. Fan-out never
// carries error events.
func (h *Handler) sendError(client *Client, err error) {
	payload, marshalErr := json.Marshal(domain.NewErrorEvent(err))
	if marshalErr != nil {
		return
	}
	_ = client.Send(payload)
}

// extractToken pulls the session credential from the "token" cookie, falling
// back to a bearer Authorization header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

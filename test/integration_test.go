package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/infrastructure/api"
	"chat-relay/infrastructure/ws"
	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/relay"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type stack struct {
	server *httptest.Server
	cfg    Config
}

func newStack(t *testing.T) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLogger(nil).
		WithValueLogFileSize(16 << 20))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	search, err := repositories.NewSearchIndex(log, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = search.Close() })

	users := repositories.NewUserRepository(db)
	rooms := repositories.NewRoomRepository(db)
	messages := repositories.NewMessageRepository(db, log, nil)

	replacement, err := internal.CharacterRune(cfg.ReplacementChar)
	require.NoError(t, err)
	moderator, err := moderation.NewDefaultModerator(replacement)
	require.NoError(t, err)

	tokens := auth.NewTokenService(cfg.TokenSecret, time.Hour)
	registry := relay.NewRegistry()
	membership := relay.NewMembershipIndex(log, rooms,
		time.Duration(cfg.MembershipMs)*time.Millisecond)
	router := relay.NewRouter(log, registry, membership)

	chatService := services.NewChatService(log, moderator, messages, search, router)
	authService := services.NewAuthService(users, tokens)

	wsHandler := ws.NewHandler(log, ws.Options{
		BufferSize:   cfg.ConnectionBuf,
		WriteTimeout: time.Second,
		PongTimeout:  10 * time.Second,
	}, tokens, registry, membership, chatService)

	apiServer := api.NewServer(log, authService, chatService, rooms, users, tokens, time.Hour)

	s := &stack{cfg: cfg}
	s.server = httptest.NewServer(apiServer.Router(wsHandler.Handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *stack) post(t *testing.T, path, token string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *stack) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type accountPayload struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

func (s *stack) registerUser(t *testing.T, name, email string) accountPayload {
	t.Helper()
	resp := s.post(t, "/api/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Sup3r-Secret!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[accountPayload](t, resp)
}

func (s *stack) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	header := http.Header{}
	header.Set("Cookie", "token="+token)
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var event domain.Event
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func join(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	payload, err := json.Marshal(domain.Event{Type: domain.EventJoinRoom, Room: domain.RoomID(room)})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
	event := readEvent(t, conn)
	require.Equal(t, domain.EventJoined, event.Type)
}

func sendMessage(t *testing.T, conn *websocket.Conn, room, content string) {
	t.Helper()
	payload, err := json.Marshal(domain.Event{
		Type:    domain.EventSendMessage,
		Room:    domain.RoomID(room),
		Content: content,
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestRelay_End_To_End(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	// Given two registered users sharing a room
	alice := s.registerUser(t, "Alice", "alice@example.com")
	bob := s.registerUser(t, "Bob", "bob@example.com")

	resp := s.post(t, "/api/rooms", alice.Token, map[string]any{
		"name":    "general",
		"members": []string{bob.ID},
	})
	req.Equal(http.StatusCreated, resp.StatusCode)
	room := decode[repositories.Room](t, resp)

	// And both online, with alice on two devices
	aliceLaptop := s.dial(t, alice.Token)
	alicePhone := s.dial(t, alice.Token)
	bobLaptop := s.dial(t, bob.Token)
	join(t, aliceLaptop, room.ID)
	join(t, alicePhone, room.ID)
	join(t, bobLaptop, room.ID)

	// When bob speaks
	sendMessage(t, bobLaptop, room.ID, "hello from bob")

	// Then both alice devices hear it and bob hears nothing back
	for _, device := range []*websocket.Conn{aliceLaptop, alicePhone} {
		event := readEvent(t, device)
		req.Equal(domain.EventMessageReceived, event.Type)
		req.Equal(domain.UserID(bob.ID), event.Sender)
		req.Equal("hello from bob", event.Content)
	}
	expectSilence(t, bobLaptop)
}

func TestRelay_Moderation_And_History(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.registerUser(t, "Alice", "alice@example.com")
	bob := s.registerUser(t, "Bob", "bob@example.com")

	resp := s.post(t, "/api/rooms", alice.Token, map[string]any{
		"name":    "general",
		"members": []string{bob.ID},
	})
	req.Equal(http.StatusCreated, resp.StatusCode)
	room := decode[repositories.Room](t, resp)

	aliceConn := s.dial(t, alice.Token)
	bobConn := s.dial(t, bob.Token)
	join(t, aliceConn, room.ID)
	join(t, bobConn, room.ID)

	// When alice lets a forbidden word slip
	sendMessage(t, aliceConn, room.ID, "oh darn it")

	// Then bob only ever sees the censored version
	event := readEvent(t, bobConn)
	req.Equal("oh **** it", event.Content)

	// And so does the durable history
	historyResp := s.get(t, fmt.Sprintf("/api/rooms/%s/messages", room.ID), bob.Token)
	req.Equal(http.StatusOK, historyResp.StatusCode)
	history := decode[struct {
		Messages []domain.Message `json:"messages"`
	}](t, historyResp)
	req.Len(history.Messages, 1)
	req.Equal("oh **** it", history.Messages[0].Content)
}

func TestRelay_Join_Requires_Membership(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.registerUser(t, "Alice", "alice@example.com")
	mallory := s.registerUser(t, "Mallory", "mallory@example.com")

	resp := s.post(t, "/api/rooms", alice.Token, map[string]any{"name": "private"})
	req.Equal(http.StatusCreated, resp.StatusCode)
	room := decode[repositories.Room](t, resp)

	// When an outsider tries to join over the socket
	conn := s.dial(t, mallory.Token)
	payload, err := json.Marshal(domain.Event{Type: domain.EventJoinRoom, Room: domain.RoomID(room.ID)})
	req.NoError(err)
	req.NoError(conn.WriteMessage(websocket.TextMessage, payload))

	// Then the join is refused but the session survives
	event := readEvent(t, conn)
	req.Equal(domain.EventError, event.Type)

	// And the HTTP surface refuses the history too
	historyResp := s.get(t, fmt.Sprintf("/api/rooms/%s/messages", room.ID), mallory.Token)
	req.Equal(http.StatusForbidden, historyResp.StatusCode)
}

func TestRelay_Search_Finds_Messages(t *testing.T) {
	req := require.New(t)
	s := newStack(t)

	alice := s.registerUser(t, "Alice", "alice@example.com")
	bob := s.registerUser(t, "Bob", "bob@example.com")

	resp := s.post(t, "/api/rooms", alice.Token, map[string]any{
		"name":    "general",
		"members": []string{bob.ID},
	})
	req.Equal(http.StatusCreated, resp.StatusCode)
	room := decode[repositories.Room](t, resp)

	aliceConn := s.dial(t, alice.Token)
	join(t, aliceConn, room.ID)
	sendMessage(t, aliceConn, room.ID, "deploy scheduled for friday evening")
	sendMessage(t, aliceConn, room.ID, "lunch anyone")

	// Indexing is asynchronous from the client's point of view; give the
	// relay a moment to drain the dispatch before querying.
	require.Eventually(t, func() bool {
		searchResp := s.get(t, fmt.Sprintf("/api/rooms/%s/search?q=deploy", room.ID), bob.Token)
		defer searchResp.Body.Close()
		if searchResp.StatusCode != http.StatusOK {
			return false
		}
		hits := decode[struct {
			Hits []repositories.SearchHit `json:"hits"`
		}](t, searchResp)
		return len(hits.Hits) == 1 &&
			strings.Contains(hits.Hits[0].Content, "deploy")
	}, 5*time.Second, 100*time.Millisecond)
}

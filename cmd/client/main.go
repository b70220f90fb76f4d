// Terminal client for the relay: logs in over HTTP, opens the websocket with
// the session cookie, then relays stdin lines as messages.
//
// Usage:
//
//	client -server http://localhost:8080 -email alice@example.com -password secret -room <room-id>
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"chat-relay/domain"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Relay base URL")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	room := flag.String("room", "", "Room to join on connect")
	flag.Parse()

	if *email == "" || *password == "" || *room == "" {
		color.Red.Println("email, password and room are required")
		os.Exit(1)
	}

	if err := run(*server, *email, *password, *room); err != nil {
		color.Red.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(server, email, password, room string) error {
	token, err := login(server, email, password)
	if err != nil {
		return err
	}

	wsURL := "ws" + strings.TrimPrefix(server, "http") + "/ws"
	header := http.Header{}
	header.Set("Cookie", "token="+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	defer conn.Close()

	if err := send(conn, domain.Event{Type: domain.EventJoinRoom, Room: domain.RoomID(room)}); err != nil {
		return err
	}

	go receive(conn)

	color.Green.Printf("Connected to %s, type to chat\n", room)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if after, ok := strings.CutPrefix(line, "/join "); ok {
			room = strings.TrimSpace(after)
			if err := send(conn, domain.Event{Type: domain.EventJoinRoom, Room: domain.RoomID(room)}); err != nil {
				return err
			}
			continue
		}
		event := domain.Event{Type: domain.EventSendMessage, Room: domain.RoomID(room), Content: line}
		if err := send(conn, event); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func login(server, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(server+"/api/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login rejected: %s", resp.Status)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

func receive(conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			color.Red.Println("Connection closed")
			os.Exit(0)
		}

		var event domain.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}

		switch event.Type {
		case domain.EventMessageReceived:
			color.Cyan.Printf("[%s] ", event.Room)
			color.Yellow.Printf("%s: ", event.Sender)
			fmt.Println(event.Content)
		case domain.EventJoined:
			color.Green.Printf("Joined %s\n", event.Room)
		case domain.EventError:
			color.Red.Printf("Server error: %s\n", event.Error)
		}
	}
}

func send(conn *websocket.Conn, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

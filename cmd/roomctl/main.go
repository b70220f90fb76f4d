// roomctl is the operator's door into the relay store: rooms are created and
// membership granted here, not over the relay protocol.
//
// Examples:
//
//	roomctl -db /var/lib/chat-relay -cmd create-room -name general -members u1,u2
//	roomctl -db /var/lib/chat-relay -cmd add-member -room r1 -user u3
//	roomctl -db /var/lib/chat-relay -cmd list-rooms
//	roomctl -db /var/lib/chat-relay -cmd list-messages -room r1
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"chat-relay/domain"
	"chat-relay/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", "", "Path to badger DB")
	cmd := flag.String("cmd", "list-rooms", "One of: list-rooms, create-room, add-member, list-messages")
	name := flag.String("name", "", "Room name (create-room)")
	members := flag.String("members", "", "Comma-separated member user IDs (create-room)")
	room := flag.String("room", "", "Room ID (add-member, list-messages)")
	user := flag.String("user", "", "User ID (add-member)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("-db is required")
	}

	readOnly := *cmd == "list-rooms" || *cmd == "list-messages"
	db, err := openDB(*dbPath, readOnly)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	rooms := repositories.NewRoomRepository(db)
	messages := repositories.NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelError), nil)

	switch *cmd {
	case "list-rooms":
		listRooms(rooms)
	case "create-room":
		createRoom(rooms, *name, *members)
	case "add-member":
		addMember(rooms, *room, *user)
	case "list-messages":
		listMessages(messages, *room)
	default:
		log.Fatalf("Unknown command %q", *cmd)
	}
}

func listRooms(rooms *repositories.RoomRepository) {
	all, err := rooms.ListRooms()
	if err != nil {
		log.Fatal(err)
	}

	table := newTable([]string{"ID", "Name", "Members", "Created"})
	for _, r := range all {
		table.Append([]string{
			r.ID,
			r.Name,
			strings.Join(r.Members, ","),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func createRoom(rooms *repositories.RoomRepository, name, members string) {
	if name == "" {
		log.Fatal("-name is required")
	}
	ids := lo.FilterMap(strings.Split(members, ","), func(m string, _ int) (domain.UserID, bool) {
		m = strings.TrimSpace(m)
		return domain.UserID(m), m != ""
	})

	created, err := rooms.CreateRoom(name, ids)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created room %s (%s) with %d member(s)\n", created.ID, created.Name, len(created.Members))
}

func addMember(rooms *repositories.RoomRepository, room, user string) {
	if room == "" || user == "" {
		log.Fatal("-room and -user are required")
	}
	if err := rooms.AddMember(domain.RoomID(room), domain.UserID(user)); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Added %s to %s\n", user, room)
}

func listMessages(messages repositories.MessageRepository, room string) {
	if room == "" {
		log.Fatal("-room is required")
	}

	table := newTable([]string{"Time", "Author", "Lang", "Content"})
	var cursor *string
	for {
		page, next, err := messages.GetMessages(domain.RoomID(room), cursor)
		if err != nil {
			log.Fatal(err)
		}
		if len(page) == 0 {
			break
		}
		for _, m := range page {
			table.Append([]string{
				m.At.Format("15:04:05"),
				m.Author,
				m.Lang,
				m.Content,
			})
		}
		if next == nil {
			break
		}
		cursor = next
	}
	table.Render()
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func openDB(path string, readOnly bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithValueLogFileSize(10 * 1024 * 1024)
	if readOnly {
		// BypassLockGuard allows peeking while the relay holds the lock.
		opts = opts.WithReadOnly(true).WithBypassLockGuard(true)
	}
	return badger.Open(opts)
}

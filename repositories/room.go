//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IRoomRepository is the durable membership store. The relay core only ever
// calls IsMember; the remaining operations serve the HTTP API and admin
// tooling, since rooms are created outside the relay.
type IRoomRepository interface {
	CreateRoom(name string, members []domain.UserID) (Room, error)
	AddMember(room domain.RoomID, id domain.UserID) error
	IsMember(ctx context.Context, id domain.UserID, room domain.RoomID) (bool, error)
	GetRoom(room domain.RoomID) (Room, error)
	ListRooms() ([]Room, error)
	RoomsFor(id domain.UserID) ([]Room, error)
}

type Room struct {
	ID        string    `cbor:"1,keyasint"`
	Name      string    `cbor:"2,keyasint"`
	Members   []string  `cbor:"3,keyasint"`
	CreatedAt time.Time `cbor:"4,keyasint"`
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomPrefix = "room:"

func roomKey(id domain.RoomID) []byte { return []byte(roomPrefix + string(id)) }

func (r *RoomRepository) CreateRoom(name string, members []domain.UserID) (Room, error) {
	room := Room{
		ID:   uuid.NewString(),
		Name: name,
		Members: lo.Map(members, func(id domain.UserID, _ int) string {
			return string(id)
		}),
		CreatedAt: time.Now().UTC(),
	}

	data, err := cbor.Marshal(room)
	if err != nil {
		return Room{}, fmt.Errorf("marshal failed: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roomKey(domain.RoomID(room.ID)), data)
	})
	return room, err
}

// AddMember appends the identity to the durable member list. Idempotent.
func (r *RoomRepository) AddMember(room domain.RoomID, id domain.UserID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		current, err := readRoom(txn, room)
		if err != nil {
			return err
		}
		if lo.Contains(current.Members, string(id)) {
			return nil
		}
		current.Members = append(current.Members, string(id))
		data, err := cbor.Marshal(current)
		if err != nil {
			return err
		}
		return txn.Set(roomKey(room), data)
	})
}

// IsMember answers the durable-membership question consulted on every join.
// The context is honored so callers can bound the lookup.
func (r *RoomRepository) IsMember(ctx context.Context, id domain.UserID, room domain.RoomID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	current, err := r.GetRoom(room)
	if err != nil {
		return false, err
	}
	return lo.Contains(current.Members, string(id)), nil
}

func (r *RoomRepository) GetRoom(room domain.RoomID) (Room, error) {
	var out Room
	err := r.db.View(func(txn *badger.Txn) error {
		got, err := readRoom(txn, room)
		if err != nil {
			return err
		}
		out = got
		return nil
	})
	return out, err
}

func (r *RoomRepository) ListRooms() ([]Room, error) {
	var rooms []Room
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(roomPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var room Room
				if err := cbor.Unmarshal(val, &room); err != nil {
					return err
				}
				rooms = append(rooms, room)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rooms, err
}

func (r *RoomRepository) RoomsFor(id domain.UserID) ([]Room, error) {
	rooms, err := r.ListRooms()
	if err != nil {
		return nil, err
	}
	return lo.Filter(rooms, func(room Room, _ int) bool {
		return lo.Contains(room.Members, string(id))
	}), nil
}

func readRoom(txn *badger.Txn, room domain.RoomID) (Room, error) {
	var out Room
	item, err := txn.Get(roomKey(room))
	if err != nil {
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return Room{}, errors.ErrRoomNotFound
		}
		return Room{}, err
	}
	err = item.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &out)
	})
	return out, err
}

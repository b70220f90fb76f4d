//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(name, email, hashedPassword string) (domain.UserID, error)
	GetUserByEmail(email string) (User, error)
	GetUserByID(id domain.UserID) (User, error)
}

// User is the repository-level representation of an account.
type User struct {
	ID           string    `cbor:"1,keyasint"`
	Name         string    `cbor:"2,keyasint"`
	Email        string    `cbor:"3,keyasint"`
	PasswordHash string    `cbor:"4,keyasint"`
	CreatedAt    time.Time `cbor:"5,keyasint"`
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

func userKey(email string) []byte       { return []byte("user:" + email) }
func userIDKey(id domain.UserID) []byte { return []byte("uid:" + string(id)) }

// CreateUser persists a new account and returns its generated ID.
// The email is the uniqueness anchor; a secondary uid key allows ID lookups.
func (r *UserRepository) CreateUser(name, email, hashedPassword string) (domain.UserID, error) {
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := cbor.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(userKey(email), data); err != nil {
			return err
		}
		return txn.Set(userIDKey(domain.UserID(user.ID)), []byte(email))
	})
	if err != nil {
		return "", err
	}
	return domain.UserID(user.ID), nil
}

func (r *UserRepository) GetUserByEmail(email string) (User, error) {
	var user User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, &user)
		})
	})
	return user, err
}

func (r *UserRepository) GetUserByID(id domain.UserID) (User, error) {
	var email string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userIDKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			email = string(val)
			return nil
		})
	})
	if err != nil {
		return User{}, err
	}
	return r.GetUserByEmail(email)
}

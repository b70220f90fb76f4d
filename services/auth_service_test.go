package services_test

import (
	"testing"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validRegister() auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Sup3r-Secret!",
	}
}

func TestAuthService_Register(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given
	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	users.EXPECT().
		CreateUser("Alice", "alice@example.com", gomock.Any()).
		Return(domain.UserID("u-1"), nil)
	tokens.EXPECT().Issue(domain.UserID("u-1")).Return("token-1", nil)

	// When
	account, token, err := service.Register(validRegister())

	// Then
	req.NoError(err)
	req.Equal(domain.UserID("u-1"), account.ID)
	req.Equal("alice@example.com", account.Email)
	req.Equal("token-1", token)
}

func TestAuthService_Register_Rejects_Weak_Password(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a password that fails validation; the repository is never touched
	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	request := validRegister()
	request.Password = "short"

	// When
	_, _, err := service.Register(request)

	// Then
	req.ErrorIs(err, errors.ErrInvalidPassword)
}

func TestAuthService_Register_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given
	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.UserID(""), errors.ErrUserAlreadyExists)

	// When
	_, _, err := service.Register(validRegister())

	// Then
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a stored user with a real argon2id hash of the password
	hash, err := auth.HashPassword("Sup3r-Secret!")
	req.NoError(err)

	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	users.EXPECT().GetUserByEmail("alice@example.com").Return(repositories.User{
		ID:           "u-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)
	tokens.EXPECT().Issue(domain.UserID("u-1")).Return("token-2", nil)

	// When
	account, token, err := service.Login(auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3r-Secret!",
	})

	// Then
	req.NoError(err)
	req.Equal(domain.UserID("u-1"), account.ID)
	req.Equal("token-2", token)
}

func TestAuthService_Login_Wrong_Password(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given
	hash, err := auth.HashPassword("Sup3r-Secret!")
	req.NoError(err)

	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	users.EXPECT().GetUserByEmail("alice@example.com").Return(repositories.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)

	// When
	_, _, err = service.Login(auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	// Then
	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_Unknown_User_Same_Error(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given an email with no account behind it
	users := mocks.NewMockIUserRepository(ctrl)
	tokens := mocks.NewMockITokenService(ctrl)
	service := services.NewAuthService(users, tokens)

	users.EXPECT().GetUserByEmail("ghost@example.com").
		Return(repositories.User{}, errors.ErrInvalidCredentials)

	// When
	_, _, err := service.Login(auth.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-123!",
	})

	// Then the caller cannot tell "no such user" from "wrong password"
	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

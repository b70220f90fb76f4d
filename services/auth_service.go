//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
	"fmt"
)

type IAuthService interface {
	Register(req auth.RegisterRequest) (Account, string, error)
	Login(req auth.LoginRequest) (Account, string, error)
}

// Account is the client-facing view of a user, password hash excluded.
type Account struct {
	ID    domain.UserID
	Name  string
	Email string
}

type AuthService struct {
	users  repositories.IUserRepository
	tokens contract.ITokenService
}

func NewAuthService(users repositories.IUserRepository, tokens contract.ITokenService) IAuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the request, hashes the password, persists the account
// and issues the initial session token. Validation runs before any expensive
// cryptographic work.
func (s *AuthService) Register(req auth.RegisterRequest) (Account, string, error) {
	if err := auth.ValidateRegister(req); err != nil {
		return Account{}, "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Account{}, "", fmt.Errorf("hashing failed: %w", err)
	}

	id, err := s.users.CreateUser(req.Name, req.Email, hash)
	if err != nil {
		return Account{}, "", err
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		return Account{}, "", errors.ErrTokenGeneration
	}
	return Account{ID: id, Name: req.Name, Email: req.Email}, token, nil
}

// Login checks the credentials and issues a session token. Lookup and
// comparison failures collapse into one generic error to prevent user
// enumeration.
func (s *AuthService) Login(req auth.LoginRequest) (Account, string, error) {
	if err := auth.ValidateLogin(req); err != nil {
		return Account{}, "", errors.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return Account{}, "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return Account{}, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.UserID(user.ID))
	if err != nil {
		return Account{}, "", errors.ErrTokenGeneration
	}
	return Account{ID: domain.UserID(user.ID), Name: user.Name, Email: user.Email}, token, nil
}

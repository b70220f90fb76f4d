package auth

import (
	"chat-relay/domain"
	"chat-relay/errors"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-relay"

// SessionClaims is the data embedded in the signed session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed session tokens.
// Verification is a pure function of the token and the clock; the clock is
// injectable so expiry boundaries can be tested deterministically.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue produces a signed token binding the identity for the configured TTL.
// No side effects beyond token construction.
func (s *TokenService) Issue(id domain.UserID) (string, error) {
	issuedAt := s.now()
	claims := &SessionClaims{
		UserID: string(id),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// Expired tokens fail with ErrTokenExpired, everything else with
// ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.ErrTokenExpired
		}
		return "", errors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.ErrTokenInvalid
	}
	return domain.UserID(claims.UserID), nil
}

package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpiredCredential means the token was well-formed and correctly
	// signed but its expiry has passed.
	ErrExpiredCredential = errors.New("credential has expired")
	// ErrInvalidCredential covers bad signatures, malformed payloads and
	// unexpected signing methods.
	ErrInvalidCredential = errors.New("credential is invalid")
)

// Claims is the verified payload of an access token.
type Claims struct {
	UserID       uuid.UUID
	TokenVersion int
}

// Service issues and verifies signed, time-limited identity tokens.
// It is a pure function of the secret, the payload and the clock; it
// never touches the store.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a token binding the user's id and current token version.
// Bumping the version on the user invalidates every token issued before
// the bump without keeping a revocation list.
func (s *Service) Issue(userID uuid.UUID, tokenVersion int) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"ver": tokenVersion,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *Service) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredCredential
		}
		return Claims{}, ErrInvalidCredential
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidCredential
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, ErrInvalidCredential
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, ErrInvalidCredential
	}

	// JSON numbers decode as float64 in MapClaims.
	ver, ok := mapClaims["ver"].(float64)
	if !ok {
		return Claims{}, ErrInvalidCredential
	}

	return Claims{UserID: userID, TokenVersion: int(ver)}, nil
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

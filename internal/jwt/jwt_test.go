package jwt_test

import (
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/anjimamurali/BlogHub/internal/jwt"
)

var testSecret = []byte("test-secret-do-not-use")

func TestService_IssueAndVerify(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID, 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, 3, claims.TokenVersion)
}

func TestService_Verify_Expired(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)

	// Sign a token whose expiry already passed.
	expired := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"sub": uuid.New().String(),
		"ver": 0,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	require.ErrorIs(t, err, jwt.ErrExpiredCredential)
}

func TestService_Verify_TamperedSignature(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)

	token, err := svc.Issue(uuid.New(), 0)
	require.NoError(t, err)

	// Replace the last signature character with a different one.
	replacement := "A"
	if strings.HasSuffix(token, "A") {
		replacement = "B"
	}
	tampered := token[:len(token)-1] + replacement
	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, jwt.ErrInvalidCredential)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	other := jwt.NewService([]byte("a-different-secret"), time.Hour)
	token, err := other.Issue(uuid.New(), 0)
	require.NoError(t, err)

	svc := jwt.NewService(testSecret, time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, jwt.ErrInvalidCredential)
}

func TestService_Verify_Malformed(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		require.ErrorIs(t, err, jwt.ErrInvalidCredential)
	}
}

func TestService_Verify_MissingClaims(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)

	// Well-signed but without sub/ver claims.
	bare := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := bare.SignedString(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	require.ErrorIs(t, err, jwt.ErrInvalidCredential)
}

func TestService_DefaultTTL(t *testing.T) {
	svc := jwt.NewService(testSecret, 0)
	require.Equal(t, time.Hour, svc.TTL())
}

package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, 7*24*time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateToken("64b7f0c2a1b2c3d4e5f60718", "a@b.com", "A", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenService_RejectsEmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService(testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.GenerateToken("u1", "a@b.com", "A", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenService(testSecret, time.Hour)
	verifier, _ := NewTokenService("another-secret-entirely", time.Hour)

	token, err := issuer.GenerateToken("u1", "a@b.com", "A", "user")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsOtherTokenTypes(t *testing.T) {
	svc, _ := NewTokenService(testSecret, time.Hour)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"typ": "refresh",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := refresh.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.EqualError(t, err, "invalid token type")
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"typ": accessTokenType,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenService_MissingSubject(t *testing.T) {
	svc, _ := NewTokenService(testSecret, time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": accessTokenType,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

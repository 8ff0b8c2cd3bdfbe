package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	s := NewService("test-secret-key-for-unit-tests-only", time.Hour)

	before := time.Now()
	token, expiresAt, err := s.GenerateAccessToken("user-123", "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 2*time.Second)

	claims, err := s.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestService_ValidateAccessToken_Invalid(t *testing.T) {
	s := NewService("test-secret-key-for-unit-tests-only", time.Hour)
	other := NewService("another-secret-key-for-unit-tests", time.Hour)

	foreign, _, err := other.GenerateAccessToken("user-123", "alice")
	require.NoError(t, err)

	expired := NewService("test-secret-key-for-unit-tests-only", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateAccessToken("user-123", "alice")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "user-123",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "user-123",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "gonotes", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(s.secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "other secret", token: foreign},
		{name: "expired", token: expiredToken},
		{name: "alg none", token: noneToken},
		{name: "wrong issuer", token: wrongIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := s.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

package qkart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/internal/qkart"
)

func newTestTokenService() *qkart.TokenService {
	return qkart.NewTokenService("test-secret-key", 30*time.Minute)
}

func TestGenerateAuthTokens_RoundTrip(t *testing.T) {
	service := newTestTokenService()
	user := &domain.User{ID: 424242, Email: "crio-user@gmail.com"}

	tokens, err := service.GenerateAuthTokens(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Access.Token)
	assert.True(t, tokens.Access.Expires.After(time.Now()))
	assert.True(t, tokens.Access.Expires.Before(time.Now().Add(31*time.Minute)))

	claims, err := service.ParseToken(tokens.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, qkart.TokenTypeAccess, claims.Type)

	uid, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)
}

func TestParseToken_Expired(t *testing.T) {
	service := newTestTokenService()

	token, err := service.GenerateToken(7, qkart.TokenTypeAccess, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = service.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongKey(t *testing.T) {
	service := newTestTokenService()
	other := qkart.NewTokenService("another-secret", 30*time.Minute)

	token, err := service.GenerateToken(7, qkart.TokenTypeAccess, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	service := newTestTokenService()

	_, err := service.ParseToken("not-a-token")
	assert.Error(t, err)
}

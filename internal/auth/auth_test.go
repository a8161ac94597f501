package auth

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f246632/rijeka-online/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("lozinka123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "lozinka123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "kriva-lozinka")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Rejects(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.User{
		Timestamps: domain.Timestamps{ID: "user-abc"},
		Email:      "ana@rijeka.online",
		Role:       domain.RoleAuthor,
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "ana@rijeka.online", claims.Email)
	assert.Equal(t, domain.RoleAuthor, claims.Role)
}

func TestVerifyAccessToken_Tampered(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.User{Timestamps: domain.Timestamps{ID: "user-abc"}, Email: "x@y.hr", Role: domain.RoleAdmin}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token + "x")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestTokenService(t)

	tok, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	// Hash is deterministic and differs from the raw token.
	assert.Equal(t, HashRefreshToken(tok), HashRefreshToken(tok))
	assert.NotEqual(t, tok, HashRefreshToken(tok))
}

func TestLoadOrGenerateKey_Stable(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)

	assert.Equal(t, key1, key2, "same directory should load the same key")
	assert.Len(t, key1, 32)
}

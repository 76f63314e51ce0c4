package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockly/pkg/auth"
)

// ─── Tokens ───

func TestIssueVerifyRoundTrip(t *testing.T) {
	token, err := auth.Issue("user-123", auth.AccessTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := auth.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(auth.AccessTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := auth.Issue("user-123", -time.Minute)
	require.NoError(t, err)

	_, ok := auth.Verify(token)
	assert.False(t, ok)
}

func TestVerifyRejectsTampered(t *testing.T) {
	token, err := auth.Issue("user-123", auth.AccessTokenTTL)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, ok := auth.Verify(tampered)
	assert.False(t, ok)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, ok := auth.Verify(token)
		assert.False(t, ok, "token %q", token)
	}
}

// ─── Passwords ───

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-password"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
	assert.False(t, auth.CheckPassword("not-a-hash", "s3cret-password"))
}

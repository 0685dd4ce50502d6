package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", "fintrack-test", 15*time.Minute, 7*24*time.Hour)
}

func TestGeneratePairRoundTrip(t *testing.T) {
	tm := newTestManager()

	access, refresh, exp, err := tm.GeneratePair("u-42", "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	ac, err := tm.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "u-42", ac.UserID)
	assert.Equal(t, "ada@example.com", ac.Email)
	assert.Equal(t, "Ada", ac.Name)

	rc, err := tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-42", rc.UserID)
	assert.Empty(t, rc.Email, "refresh token carries only the user id")
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	tm := newTestManager()

	access, refresh, _, err := tm.GeneratePair("u-1", "a@b.c", "A")
	require.NoError(t, err)

	_, err = tm.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("other-access", "other-refresh", "fintrack-test", time.Minute, time.Hour)

	access, refresh, _, err := other.GeneratePair("u-1", "a@b.c", "A")
	require.NoError(t, err)

	_, err = tm.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("s1", "s2", "fintrack-test", -time.Minute, -time.Minute)

	access, refresh, _, err := tm.GeneratePair("u-1", "a@b.c", "A")
	require.NoError(t, err)

	_, err = tm.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := newTestManager()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tm.ParseAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, VerifyPassword("s3cret-pass", hash))
	assert.Error(t, VerifyPassword("wrong", hash))
	assert.Error(t, VerifyPassword("s3cret-pass", "not-a-bcrypt-hash"))
}

func TestPasswordHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

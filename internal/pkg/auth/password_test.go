package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cr3tpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3tpass", hashed)

	assert.True(t, CheckPassword(hashed, "s3cr3tpass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cr3tpass"))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("s3cr3tpass")
	require.NoError(t, err)
	second, err := HashPassword("s3cr3tpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

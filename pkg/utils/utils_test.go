package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword"
	hashedPassword, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "testpassword"
	hashedPassword, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("test@example.com"))
	assert.True(t, IsEmail("another.test@sub.domain.co.uk"))

	assert.False(t, IsEmail("invalid-email"))
	assert.False(t, IsEmail("invalid@.com"))
	assert.False(t, IsEmail("@example.com"))
	assert.False(t, IsEmail("John <john@example.com>"))
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	require.NoError(t, err)
	b, err := RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestReferralCode(t *testing.T) {
	code, err := ReferralCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, referralAlphabet, string(r))
	}
}

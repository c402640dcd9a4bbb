package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	token, err := GenerateJWT(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	userID, err := UserIDFromToken(parsed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	_, err := VerifyJWT("not.a.token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	require.NoError(t, InitJWTSecret())

	token, err := GenerateJWT(1, "alice@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	require.NoError(t, InitJWTSecret())

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestInitJWTSecretRequiresEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	assert.Error(t, InitJWTSecret())
}

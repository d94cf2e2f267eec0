package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	token, err := GenerateToken("user-1", "counselor", time.Hour)
	require.NoError(t, err)

	userID, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "counselor", role)
}

func TestExtractClaims_ExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "student", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestExtractClaims_WrongSecret(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	signed, err := forged.SignedString([]byte("not-the-secret"))
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(signed)
	assert.Error(t, err)
}

func TestExtractClaims_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "student", "exp": time.Now().Add(time.Hour).Unix()})
	signed, err := token.SignedString(secretKey())
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(signed)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

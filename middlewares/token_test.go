package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestTokenRoundTrip(t *testing.T) {
	token, sessionID, err := GenerateGuestToken("Andi")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessionID)

	claims, err := ParseGuestToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Andi", claims.Username)
	assert.Equal(t, sessionID, claims.SessionID)

	// prefiks Bearer dari header Authorization juga diterima
	claims, err = ParseGuestToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "Andi", claims.Username)
}

func TestParseGuestTokenRejectsGarbage(t *testing.T) {
	_, err := ParseGuestToken("")
	assert.Error(t, err)

	_, err = ParseGuestToken("bukan.token.jwt")
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RXAliman/scrunch/config"
)

func testConfig() *config.Config {
	return &config.Config{
		SessionSecretKey:  "test-secret",
		SessionIssuer:     "scrunch",
		SessionExpiration: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	tokenString, err := GenerateToken(cfg, 42)
	require.NoError(t, err)

	token, err := ValidateToken(cfg, tokenString)
	require.NoError(t, err)

	accountID, err := AccountIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accountID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(testConfig(), 42)
	require.NoError(t, err)

	other := testConfig()
	other.SessionSecretKey = "different-secret"
	_, err = ValidateToken(other, tokenString)
	assert.Error(t, err)
}

func TestTokenJTI_UniquePerToken(t *testing.T) {
	cfg := testConfig()

	a, err := GenerateToken(cfg, 1)
	require.NoError(t, err)
	b, err := GenerateToken(cfg, 1)
	require.NoError(t, err)

	jtiA, okA := tokenJTI(a)
	jtiB, okB := tokenJTI(b)
	require.True(t, okA)
	require.True(t, okB)
	assert.NotEqual(t, jtiA, jtiB)
}

func TestTokenJTI_GarbageToken(t *testing.T) {
	_, ok := tokenJTI("not-a-token")
	assert.False(t, ok)
}

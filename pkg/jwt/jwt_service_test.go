package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koktajlove-api/domain"
)

func testService(expiry time.Duration) *jwtService {
	return &jwtService{
		secretKey: "test-secret",
		issuer:    "KOKTAJLOVE",
		expiry:    expiry,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	j := testService(time.Minute)

	token, err := j.GenerateAccessToken(42, "ania")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := j.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestExpiredToken(t *testing.T) {
	j := testService(-time.Minute)

	token, err := j.GenerateAccessToken(42, "ania")
	require.NoError(t, err)

	_, err = j.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestInvalidToken(t *testing.T) {
	j := testService(time.Minute)

	_, err := j.GetUserIDByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// A token signed with a different key is rejected.
	other := testService(time.Minute)
	other.secretKey = "different-secret"
	token, err := other.GenerateAccessToken(42, "ania")
	require.NoError(t, err)

	_, err = j.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndParseSessionToken(t *testing.T) {
	secret := []byte("test-secret")

	token, expiresAt, err := IssueSessionToken(secret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseSessionToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, "admin_session", claims["typ"])
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, _, err := IssueSessionToken([]byte("right"), time.Hour)
	assert.NoError(t, err)

	_, err = ParseSessionToken([]byte("wrong"), token)
	assert.Error(t, err)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, _, err := IssueSessionToken([]byte("secret"), -time.Minute)
	assert.NoError(t, err)

	_, err = ParseSessionToken([]byte("secret"), token)
	assert.Error(t, err)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken([]byte("secret"), "not-a-token")
	assert.Error(t, err)
}

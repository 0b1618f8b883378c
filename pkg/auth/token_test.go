package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens(testSecret)
	token, err := tokens.Issue("alice", time.Minute)
	require.NoError(t, err)

	username, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokens(testSecret)
	token, err := tokens.Issue("alice", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokens(testSecret)
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokens([]byte("other-secret")).Issue("alice", time.Minute)
	require.NoError(t, err)

	_, err = NewTokens(testSecret).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

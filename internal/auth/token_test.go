package auth

import (
	"testing"
	"time"

	"bayou-social/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	assert.NotEmpty(t, token)

	verified, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, verified)
}

func TestTokenTampered(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = tokens.Verify(token + "x")
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	_, err := tokens.Verify("garbage")
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestTokenWrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("another-secret", time.Hour)

	token, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = other.Verify(token)
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	token, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = tokens.Verify(token)
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

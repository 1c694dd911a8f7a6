package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	assert.NotEqual(t, "secret1", digest)

	match, err := CheckPassword("secret1", digest)
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPassword("secret2", digest)
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordDigestsAreSalted(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	assert.NotEqual(t, first, second)
}

func TestCheckPasswordCorruptDigest(t *testing.T) {
	match, err := CheckPassword("secret1", "not-a-bcrypt-digest")
	assert.Error(t, err)
	assert.False(t, match)
}

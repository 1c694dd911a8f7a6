package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted one-way digest of the password. The salt is
// embedded in the returned digest, so no separate salt storage is needed.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPassword recomputes the hash with the salt embedded in the digest and
// compares in constant time. A mismatch returns (false, nil); a structurally
// corrupt digest returns a non-nil error.
func CheckPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

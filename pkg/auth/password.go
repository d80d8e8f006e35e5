package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted for local accounts.
	MinPasswordLength = 6

	bcryptCost = 10
)

var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// HashPassword generates a salted bcrypt digest of the password.
// Each call on the same input yields a different digest.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword reports whether the password matches the digest.
// It never returns an error: empty input or a malformed digest is just false.
func CheckPassword(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost balances hash strength against login latency. 12 keeps
	// a single hash well under 500ms on current hardware.
	bcryptCost = 12

	// maxPasswordBytes is bcrypt's input limit. Bytes past 72 are
	// silently ignored by the algorithm, so longer inputs are rejected
	// instead of being truncated.
	maxPasswordBytes = 72
)

// ErrPasswordTooLong is returned when a password exceeds bcrypt's
// 72-byte input limit.
var ErrPasswordTooLong = errors.New("password must be at most 72 characters")

// PasswordHasher hashes and verifies account passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at the standard cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash derives a bcrypt hash of password. Passwords longer than
// bcrypt's 72-byte limit are rejected with ErrPasswordTooLong.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

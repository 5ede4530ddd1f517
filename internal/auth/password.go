package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest accepted bcrypt cost factor. Anything lower
// is too cheap to resist offline brute force.
const MinBcryptCost = 10

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so callers cannot enumerate registered addresses.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBcryptCost {
		return "", fmt.Errorf("bcrypt cost %d below minimum %d", cost, MinBcryptCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword compares a password against a stored bcrypt hash.
// Returns ErrInvalidCredentials on mismatch.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

package auth

import (
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used for every stored credential.
const DefaultBcryptCost = 12

// HashPassword hashes a plaintext password with the given cost. The salt is
// random, so two calls with the same input produce different digests.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored digest. Two digest
// encodings coexist in storage: the bcrypt modular-crypt string and a legacy
// base64 wrapping of the same digest bytes. The primary path is tried first;
// only when the digest does not parse as modular-crypt is the legacy decoding
// attempted. Malformed input of either kind verifies as false, never an error.
func VerifyPassword(plain, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	if err == nil {
		return true
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}

	raw, decodeErr := base64.StdEncoding.DecodeString(digest)
	if decodeErr != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(raw, []byte(plain)) == nil
}

package auth

import (
	"github.com/ansuman15/salon-software-sub002/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is a var so tests can lower it.
var bcryptCost = bcrypt.DefaultCost

// HashSecret hashes an activation key or admin password for storage.
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckSecret compares a plaintext secret with its stored hash.
// Any mismatch, including a malformed hash, yields ErrorUnauthorized.
func CheckSecret(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}

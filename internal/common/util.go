package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// MakeRandHexString returns size random bytes encoded as hex (2*size chars).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns n bytes from crypto/rand.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// activationAlphabet omits characters that are easy to misread over the phone.
const activationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewActivationKey returns a human-friendly key such as "K7QF-93XM-PA2D-H4TB".
func NewActivationKey() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, b := range raw {
		if i > 0 && i%4 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(activationAlphabet[int(b)%len(activationAlphabet)])
	}
	return sb.String(), nil
}

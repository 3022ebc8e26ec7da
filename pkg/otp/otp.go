package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// Digits is the length of generated activation codes.
const Digits = 6

var max = big.NewInt(1_000_000)

// Generate returns a 6-digit numeric activation code drawn from crypto/rand,
// zero-padded ("042917" is a valid code).
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Equal compares two codes in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Package secret generates the random values behind OTPs and reset tokens.
// Everything here draws from crypto/rand; if the entropy source fails the
// error propagates instead of falling back to a weaker generator.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Digits returns a uniformly distributed n-digit numeric string.
// Each digit is drawn independently so leading zeros are as likely as any
// other digit and the result is always exactly n characters wide.
func Digits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive, got %d", n)
	}
	b := make([]byte, n)
	ten := big.NewInt(10)
	for i := range b {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generate digit: %w", err)
		}
		b[i] = '0' + byte(d.Int64())
	}
	return string(b), nil
}

// Token returns a 64-character hex token carrying 256 bits of entropy.
func Token() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SHA256Hex returns the lowercase hex SHA-256 digest of s. Reset tokens are
// stored under this digest so a leaked store never yields usable plaintext.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

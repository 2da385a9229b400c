// Package password wraps bcrypt with the cost this service standardises on.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is deliberately above bcrypt.DefaultCost; account passwords are the
// one long-term secret this service stores.
const Cost = 12

// Hash returns the bcrypt digest of plain.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches digest.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

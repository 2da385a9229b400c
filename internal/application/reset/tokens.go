// Package reset mints and redeems the single-use tokens that authorise a
// password change. Only the SHA-256 of a token ever reaches the store; the
// stored value is the account the token is bound to, and that binding is the
// sole authority for the subsequent credential change.
package reset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skyfuel/auth-api/internal/domain"
	"github.com/skyfuel/auth-api/internal/pkg/secret"
)

// Store is the slice of the ephemeral store the token component needs.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	TakeDelete(ctx context.Context, key string) (string, error)
}

type Tokens struct {
	store Store
}

func NewTokens(store Store) *Tokens {
	return &Tokens{store: store}
}

// Issue mints a token bound to accountID and returns the plaintext — the one
// and only time it exists outside the caller's hands. Must be called only as
// the direct consequence of a successful OTP verification.
func (t *Tokens) Issue(ctx context.Context, accountID string) (string, error) {
	plain, err := secret.Token()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	key := domain.ResetKeyPrefix + secret.SHA256Hex(plain)
	if err := t.store.Set(ctx, key, accountID, domain.ResetTTL); err != nil {
		return "", err
	}
	return plain, nil
}

// Consume redeems plain exactly once and returns the bound account id.
// The take is a single atomic store operation, so of N concurrent redeemers
// exactly one succeeds. An absent key — expired, already used, or never
// issued — is domain.ErrInvalidOrExpired.
func (t *Tokens) Consume(ctx context.Context, plain string) (string, error) {
	key := domain.ResetKeyPrefix + secret.SHA256Hex(plain)
	accountID, err := t.store.TakeDelete(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("reset token: %w", domain.ErrInvalidOrExpired)
		}
		return "", err
	}
	return accountID, nil
}

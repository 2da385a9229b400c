// Package otp issues and verifies the one-time passcodes sent over the mail
// and SMS channels. A code is bound to a transient pending id and to the
// address it was delivered to, lives for a fixed short window and can be
// used at most once.
package otp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skyfuel/auth-api/internal/domain"
	redisstore "github.com/skyfuel/auth-api/internal/infrastructure/redis"
	"github.com/skyfuel/auth-api/internal/pkg/secret"
)

// Store is the slice of the ephemeral store the manager needs.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	CompareDelete(ctx context.Context, key, expected string) (redisstore.CompareResult, error)
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// record joins the code with the address the code was delivered to. The
// address is part of the compared value, so a verify that names a different
// address can never match, no matter how the code was obtained.
func record(code, email string) string {
	return code + "|" + email
}

// Issue generates a fresh 6-digit code for pendingID, bound to the address
// it is about to be delivered to, and stores it with the OTP TTL. A second
// issue for the same pending id overwrites the first, so at most one code is
// ever live per id.
func (m *Manager) Issue(ctx context.Context, pendingID, email string) (string, error) {
	code, err := secret.Digits(domain.OTPLength)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := m.store.Set(ctx, domain.OTPKeyPrefix+pendingID, record(code, email), domain.OTPTTL); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks candidate and email against the stored record in one atomic
// store operation. On match the record is deleted; on mismatch (wrong code or
// an address other than the one the code was delivered to) it is left intact
// so the legitimate holder may retry until expiry. Absent and mismatched
// records produce the same error: the caller must not learn whether a code
// was ever issued.
func (m *Manager) Verify(ctx context.Context, pendingID, candidate, email string) error {
	res, err := m.store.CompareDelete(ctx, domain.OTPKeyPrefix+pendingID, record(candidate, email))
	if err != nil {
		return err
	}
	switch res {
	case redisstore.CompareDeleted:
		return nil
	case redisstore.CompareMismatch:
		slog.Debug("otp mismatch", "pending_id", pendingID)
		return fmt.Errorf("otp mismatch: %w", domain.ErrInvalidOrExpired)
	default:
		slog.Debug("otp absent or expired", "pending_id", pendingID)
		return fmt.Errorf("otp absent: %w", domain.ErrInvalidOrExpired)
	}
}

package http

import (
	"context"

	"github.com/skyfuel/auth-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from the account store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	UpdateCredential(ctx context.Context, userID, hash string) error
}

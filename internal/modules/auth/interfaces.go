package auth

import (
	"context"

	"clubhub/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface — the ledger of issued refresh tokens.
// Revoke and RevokeAllActive report rows affected; a zero count from
// Revoke means the row was already revoked (see Refresh for why that
// matters).
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByID(ctx context.Context, id string) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	FindActiveByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedByID *string) (int64, error)
	RevokeAllActive(ctx context.Context, userID int64) (int64, error)
	RevokeActiveBeyond(ctx context.Context, userID int64, keep int) (int64, error)
}

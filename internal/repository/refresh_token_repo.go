package repository

import (
	"context"
	"time"

	"clubhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository is the ledger of issued refresh tokens.
// Rows only ever move from active to revoked; physical deletion is the
// retention job's business, never the session lifecycle's.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByID(ctx context.Context, id string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindActiveByUser returns all live rows for a user, newest first.
// One row per signed-in device.
func (r *RefreshTokenRepository) FindActiveByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now().UTC()).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Revoke marks a single row revoked. The `revoked_at IS NULL` guard makes
// it idempotent and doubles as a compare-and-set: a zero row count tells
// the caller someone else revoked the row first.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id string, replacedByID *string) (int64, error) {
	now := time.Now().UTC()
	updates := map[string]any{"revoked_at": now}
	if replacedByID != nil {
		updates["replaced_by_id"] = *replacedByID
	}
	tx := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

// RevokeAllActive is the logout-everywhere / theft-response primitive.
func (r *RefreshTokenRepository) RevokeAllActive(ctx context.Context, userID int64) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now)
	return tx.RowsAffected, tx.Error
}

// RevokeActiveBeyond keeps at most `keep` newest active rows for a user,
// revoking the rest. Caps runaway multi-device sessions at login time.
func (r *RefreshTokenRepository) RevokeActiveBeyond(ctx context.Context, userID int64, keep int) (int64, error) {
	active, err := r.FindActiveByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(active) <= keep {
		return 0, nil
	}

	var revoked int64
	for _, t := range active[keep:] {
		n, err := r.Revoke(ctx, t.ID, nil)
		if err != nil {
			return revoked, err
		}
		revoked += n
	}
	return revoked, nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}

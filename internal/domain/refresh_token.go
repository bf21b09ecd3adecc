package domain

import "time"

// RefreshToken is one ledger row per issued refresh token.
//
// Security notes:
// - We never store the raw token in DB, only its SHA-256 hash (TokenHash).
// - On refresh we rotate tokens: old token is revoked and replaced by a new one.
// - RevokedAt is append-only: once set it is never cleared.
type RefreshToken struct {
	// ID doubles as the jti claim of the signed refresh token, so a
	// presented token resolves to exactly one row.
	ID string `json:"id" gorm:"primaryKey;size:36"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`

	// Successor row minted when this one was rotated; audit only.
	ReplacedByID *string `json:"replaced_by_id" gorm:"size:36;index"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"clubhub/internal/database"
	"clubhub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", Role: domain.RolePlayer}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func newToken(userID int64, ttl time.Duration) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: uuid.NewString(), // uniqueness is all the tests need
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}

func TestRefreshTokenRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "a@club.io")
	ctx := context.Background()

	tok := newToken(user.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, tok))

	got, err := repo.GetByID(ctx, tok.ID)
	require.NoError(t, err)
	assert.Equal(t, tok.TokenHash, got.TokenHash)
	assert.Nil(t, got.RevokedAt)

	byHash, err := repo.GetByHash(ctx, tok.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, tok.ID, byHash.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshTokenRepository_FindActiveByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "b@club.io")
	ctx := context.Background()

	older := newToken(user.ID, time.Hour)
	older.CreatedAt = time.Now().UTC().Add(-2 * time.Minute)
	require.NoError(t, repo.Create(ctx, older))

	newer := newToken(user.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, newer))

	expired := newToken(user.ID, -time.Hour)
	require.NoError(t, repo.Create(ctx, expired))

	revoked := newToken(user.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, revoked))
	_, err := repo.Revoke(ctx, revoked.ID, nil)
	require.NoError(t, err)

	active, err := repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// newest first
	assert.Equal(t, newer.ID, active[0].ID)
	assert.Equal(t, older.ID, active[1].ID)
}

func TestRefreshTokenRepository_RevokeIsGuarded(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "c@club.io")
	ctx := context.Background()

	tok := newToken(user.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, tok))

	successor := uuid.NewString()
	n, err := repo.Revoke(ctx, tok.ID, &successor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, tok.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)
	require.NotNil(t, got.ReplacedByID)
	assert.Equal(t, successor, *got.ReplacedByID)

	// Second revoke is a no-op: zero rows, no error. The revoked_at
	// timestamp and successor pointer stay untouched.
	n, err = repo.Revoke(ctx, tok.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	again, err := repo.GetByID(ctx, tok.ID)
	require.NoError(t, err)
	assert.Equal(t, got.RevokedAt.Unix(), again.RevokedAt.Unix())
	require.NotNil(t, again.ReplacedByID)
	assert.Equal(t, successor, *again.ReplacedByID)
}

func TestRefreshTokenRepository_RevokeAllActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "d@club.io")
	other := createTestUser(t, db, "e@club.io")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newToken(user.ID, time.Hour)))
	}
	otherTok := newToken(other.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, otherTok))

	n, err := repo.RevokeAllActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	active, err := repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Other users' sessions are untouched.
	otherActive, err := repo.FindActiveByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherActive, 1)

	n, err = repo.RevokeAllActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRefreshTokenRepository_RevokeActiveBeyond(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "f@club.io")
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		tok := newToken(user.ID, time.Hour)
		tok.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, tok))
	}

	n, err := repo.RevokeActiveBeyond(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	active, err := repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	// The newest three survive.
	for i, tok := range active {
		assert.Equal(t, base.Add(time.Duration(4-i)*time.Second).Unix(), tok.CreatedAt.Unix())
	}
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := createTestUser(t, db, "g@club.io")
	ctx := context.Background()

	live := newToken(user.ID, time.Hour)
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, newToken(user.ID, -time.Hour)))
	require.NoError(t, repo.Create(ctx, newToken(user.ID, -time.Minute)))

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.GetByID(ctx, live.ID)
	assert.NoError(t, err)
}

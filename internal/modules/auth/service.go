package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/pkg/token"
	"clubhub/internal/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A user may stay signed in on this many devices; logging in on one more
// silently revokes the oldest session.
const maxActiveSessionsPerUser = 10

type tokenSigner interface {
	SignAccess(userID int64, email, role string) (string, error)
	SignRefresh(userID int64, tokenID string) (string, error)
	VerifyRefresh(tokenStr string) (*token.RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type passwordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, storedHash string) bool
}

// Service contains all business logic for authentication and the
// refresh-token lifecycle: issuance, rotation, reuse detection and
// cascading revocation.
type Service struct {
	users  UserRepositoryInterface
	tokens RefreshTokenRepositoryInterface
	signer tokenSigner
	hasher passwordHasher
	// Pepper mixed into stored token hashes so a leaked ledger alone
	// is not enough to forge a match.
	refreshTokenPepper string
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	signer tokenSigner,
	hasher passwordHasher,
	refreshTokenPepper string,
) *Service {
	return &Service{
		users:              users,
		tokens:             tokens,
		signer:             signer,
		hasher:             hasher,
		refreshTokenPepper: refreshTokenPepper,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrValidation
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.RolePlayer
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password: don't leak which
			// emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Other devices keep their sessions; only the oldest beyond the cap
	// get pushed out.
	if _, err := s.tokens.RevokeActiveBeyond(ctx, user.ID, maxActiveSessionsPerUser); err != nil {
		log.Printf("auth: session cap enforcement failed for user %d: %v", user.ID, err)
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token: the presented one is consumed and a
// successor pair is minted. A token that is already revoked is treated
// as stolen and every active session of that user is revoked.
func (s *Service) Refresh(ctx context.Context, rawRefreshToken string) (*AuthResult, error) {
	claims, err := s.signer.VerifyRefresh(rawRefreshToken)
	if err != nil {
		// Expired-by-claim and tampered both end the lineage here;
		// the caller has to log in again either way.
		return nil, ErrInvalidRefreshToken
	}

	record, err := s.tokens.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	// The jti only points at a row; the row is matched to the presented
	// string by its stored hash.
	if record.TokenHash != s.hashToken(rawRefreshToken) {
		return nil, ErrInvalidRefreshToken
	}

	if record.IsRevoked() {
		return nil, s.handleReuse(ctx, record)
	}

	now := time.Now().UTC()
	if record.IsExpired(now) {
		if _, err := s.tokens.Revoke(ctx, record.ID, nil); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Rotation. The guarded revoke is the linearization point: of two
	// concurrent refreshes with the same token, exactly one sees a row
	// affected. The loser is indistinguishable from a replay and is
	// handled as one.
	successorID := uuid.NewString()
	n, err := s.tokens.Revoke(ctx, record.ID, &successorID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, s.handleReuse(ctx, record)
	}

	tokens, err := s.issueTokenPairWithID(ctx, user, successorID)
	if err != nil {
		// The old token is already dead and no successor exists: the
		// lineage is lost and the user must log in again. Acceptable;
		// what is never acceptable is a half-updated row.
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Logout revokes a single session when a refresh token is supplied, or
// every active session of the user otherwise. Idempotent: logging out a
// dead session reports zero revocations, never an error.
func (s *Service) Logout(ctx context.Context, userID int64, rawRefreshToken string) (*LogoutResult, error) {
	if rawRefreshToken == "" {
		n, err := s.tokens.RevokeAllActive(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &LogoutResult{Revoked: n}, nil
	}

	record, err := s.tokens.GetByHash(ctx, s.hashToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LogoutResult{Revoked: 0}, nil
		}
		return nil, err
	}
	if record.UserID != userID {
		// Someone else's token; nothing to revoke for this caller.
		return &LogoutResult{Revoked: 0}, nil
	}

	n, err := s.tokens.Revoke(ctx, record.ID, nil)
	if err != nil {
		return nil, err
	}
	return &LogoutResult{Revoked: n}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) issueTokenPair(ctx context.Context, user *domain.User) (TokenPair, error) {
	return s.issueTokenPairWithID(ctx, user, uuid.NewString())
}

// issueTokenPairWithID signs a pair and records the refresh token in the
// ledger. The signed refresh token never leaves this function without
// its ledger row existing; otherwise reuse detection would have nothing
// to revoke.
func (s *Service) issueTokenPairWithID(ctx context.Context, user *domain.User, tokenID string) (TokenPair, error) {
	accessToken, err := s.signer.SignAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.signer.SignRefresh(user.ID, tokenID)
	if err != nil {
		return TokenPair{}, err
	}

	record := &domain.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: time.Now().UTC().Add(s.signer.RefreshTTL()),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresIn:  int64(s.signer.AccessTTL().Seconds()),
		RefreshExpiresIn: int64(s.signer.RefreshTTL().Seconds()),
	}, nil
}

// handleReuse is the theft response: a replayed token burns the user's
// every active session. Revocation is best effort; the reuse verdict
// stands even if parts of it fail.
func (s *Service) handleReuse(ctx context.Context, record *domain.RefreshToken) error {
	if _, err := s.tokens.RevokeAllActive(ctx, record.UserID); err != nil {
		log.Printf("auth: cascade revocation failed for user %d: %v", record.UserID, err)
	}
	return ErrRefreshTokenReused
}

func (s *Service) hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw + s.refreshTokenPepper))
	return hex.EncodeToString(sum[:])
}
